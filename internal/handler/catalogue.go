package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-seat-booking/internal/catalogue"
	"github.com/iliyamo/cinema-seat-booking/internal/flow"
)

// CatalogueHandler serves the film list page.
type CatalogueHandler struct {
	Feed     catalogue.Feed
	Trailers catalogue.Trailers
	Log      *zap.Logger
}

type showtimeView struct {
	Start      string `json:"horaire"`
	End        string `json:"fin"`
	Room       string `json:"salle"`
	Lang       string `json:"langue"`
	Format     string `json:"format,omitempty"`
	Accessible bool   `json:"handicap"`
}

type filmView struct {
	Title     string         `json:"titre"`
	Genres    []string       `json:"genres"`
	Duration  string         `json:"duree"`
	Poster    string         `json:"image"`
	Badges    []string       `json:"badges"`
	New       bool           `json:"nouveau"`
	Showtimes []showtimeView `json:"seances"`
}

func toFilmView(f catalogue.Film) filmView {
	v := filmView{
		Title:     f.Title,
		Genres:    f.Genres,
		Duration:  catalogue.FormatDuration(f.DurationMinutes),
		Poster:    f.Poster,
		Badges:    f.Badges(),
		New:       f.New,
		Showtimes: make([]showtimeView, 0, len(f.Showtimes)),
	}
	if v.Genres == nil {
		v.Genres = []string{}
	}
	for _, s := range f.Showtimes {
		v.Showtimes = append(v.Showtimes, showtimeView{
			Start:      s.Start,
			End:        s.End,
			Room:       string(s.Room),
			Lang:       s.LangLabel(),
			Format:     s.FormatLabel(),
			Accessible: s.Accessible,
		})
	}
	return v
}

func (h *CatalogueHandler) films(c echo.Context) ([]catalogue.Film, bool) {
	films, err := h.Feed.Films(c.Request().Context())
	if err != nil {
		h.Log.Warn("catalogue unavailable", zap.Error(err))
		return nil, false
	}
	return films, true
}

// FilmsUnavailableMessage is shown in place of the list when the feed fails.
const FilmsUnavailableMessage = "Impossible de charger les films."

// ListFilms answers GET /v1/films with the filtered catalogue.  A feed
// failure still answers 200: an empty list and the message above.
func (h *CatalogueHandler) ListFilms(c echo.Context) error {
	films, ok := h.films(c)
	if !ok {
		return c.JSON(http.StatusOK, echo.Map{"films": []filmView{}, "count": 0, "message": FilmsUnavailableMessage})
	}
	matched := catalogue.Apply(films, catalogue.FilterFromQuery(c.QueryParams()))
	out := make([]filmView, 0, len(matched))
	for _, f := range matched {
		out = append(out, toFilmView(f))
	}
	return c.JSON(http.StatusOK, echo.Map{"films": out, "count": len(out)})
}

// ListGenres answers GET /v1/genres.
func (h *CatalogueHandler) ListGenres(c echo.Context) error {
	films, ok := h.films(c)
	if !ok {
		return c.JSON(http.StatusOK, echo.Map{"genres": []string{catalogue.LangAll}})
	}
	return c.JSON(http.StatusOK, echo.Map{"genres": catalogue.Genres(films)})
}

// Trailer answers GET /v1/trailer?film=.
func (h *CatalogueHandler) Trailer(c echo.Context) error {
	u, ok := h.Trailers.Lookup(c.QueryParam("film"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no trailer"})
	}
	return c.JSON(http.StatusOK, echo.Map{"url": catalogue.EmbedURL(u)})
}

// Header answers GET /v1/header: the recap column of every booking step.
func (h *CatalogueHandler) Header(c echo.Context) error {
	p := flow.Decode(c.QueryParams())
	return c.JSON(http.StatusOK, flow.Hydrate(c.Request().Context(), p, h.Feed, h.Log))
}

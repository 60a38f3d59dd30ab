package flow

import (
	"context"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/iliyamo/cinema-seat-booking/internal/catalogue"
)

// PlaceholderPoster is shown when no poster was passed along.
const PlaceholderPoster = "placeholder.jpg"

// Header is the recap column shown on every step after the film list.
type Header struct {
	Poster   string `json:"poster"`
	Title    string `json:"title"`
	Room     string `json:"salle"`
	Start    string `json:"seance"`
	Lang     string `json:"langue"`
	Format   string `json:"format,omitempty"`
	End      string `json:"end,omitempty"`
	EndLabel string `json:"end_label"`
	Degraded bool   `json:"degraded,omitempty"`
}

// Hydrate fills the header from p and, for what p lacks, from the feed.
// A feed failure is not an error: the end time shows as unknown.
func Hydrate(ctx context.Context, p Params, feed catalogue.Feed, log *zap.Logger) Header {
	h := Header{
		Poster: posterFile(p.Poster),
		Title:  p.Film,
		Room:   p.Room,
		Start:  orDefault(p.Start, NoTime),
		Lang:   p.Lang,
		Format: p.Format,
		End:    p.End,
	}
	if h.End == "" || h.Format == "" {
		if st, err := Resolve(ctx, p, feed); err == nil {
			if h.End == "" {
				h.End = cleanTime(st.End)
			}
			if h.Format == "" {
				h.Format = st.FormatLabel()
			}
		} else if h.End == "" {
			h.Degraded = true
			if log != nil {
				log.Warn("header end time unavailable", zap.String("film", p.Film), zap.Error(err))
			}
		}
	}
	if h.End != "" {
		h.EndLabel = "Fin prévue à " + h.End
	} else {
		h.EndLabel = "Fin prévue " + NoTime
	}
	return h
}

// Resolve finds the showtime p points at in the feed.
func Resolve(ctx context.Context, p Params, feed catalogue.Feed) (catalogue.Showtime, error) {
	films, err := feed.Films(ctx)
	if err != nil {
		return catalogue.Showtime{}, err
	}
	_, st, err := catalogue.FindShowtime(films, p.Film, p.Room, p.Start)
	return st, err
}

func posterFile(p string) string {
	p = strings.TrimSpace(p)
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return PlaceholderPoster
	}
	base := path.Base(strings.ReplaceAll(p, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		return PlaceholderPoster
	}
	return base
}

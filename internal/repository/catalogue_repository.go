// Package repository contains the MySQL data access of the catalogue.  It is
// used when CATALOGUE_SOURCE=mysql and serves the same films the JSON feed
// would.
//
// Expected tables:
//
//	films(id, titre, genres, duree_minutes, age_minimum NULL,
//	      avertissement_violence, mention_frisson, nouveau, image)
//	showtimes(id, film_id, horaire, fin, salle, imax, fourk, vf, vost,
//	          handicap, libres NULL)
//
// genres is a comma separated list.  horaire and fin are "HH:MM" strings.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/iliyamo/cinema-seat-booking/internal/catalogue"
	"github.com/iliyamo/cinema-seat-booking/internal/model"
)

// CatalogueRepo reads films and their showtimes.
type CatalogueRepo struct {
	db *sql.DB
}

func NewCatalogueRepo(db *sql.DB) *CatalogueRepo { return &CatalogueRepo{db: db} }

// DB exposes the underlying handle, mainly so callers can close it.
func (r *CatalogueRepo) DB() *sql.DB { return r.db }

// Films implements catalogue.Feed.  Films are ordered by id and each
// film's showtimes by start time.
func (r *CatalogueRepo) Films(ctx context.Context) ([]catalogue.Film, error) {
	const qFilms = `SELECT id, titre, genres, duree_minutes, age_minimum, avertissement_violence,
	                       mention_frisson, nouveau, image
	                FROM films ORDER BY id`
	rows, err := r.db.QueryContext(ctx, qFilms)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		films []catalogue.Film
		index = map[uint64]int{}
	)
	for rows.Next() {
		var f model.Film
		if err := rows.Scan(&f.ID, &f.Title, &f.Genres, &f.DurationMinutes, &f.MinAge, &f.Violence, &f.Thrill, &f.New, &f.Poster); err != nil {
			return nil, err
		}
		index[f.ID] = len(films)
		films = append(films, toFilm(f))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const qShows = `SELECT film_id, horaire, fin, salle, imax, fourk, vf, vost, handicap, libres
	                FROM showtimes ORDER BY film_id, horaire`
	srows, err := r.db.QueryContext(ctx, qShows)
	if err != nil {
		return nil, err
	}
	defer srows.Close()
	for srows.Next() {
		var s model.Showtime
		if err := srows.Scan(&s.FilmID, &s.Start, &s.End, &s.Room, &s.IMAX, &s.FourK, &s.VF, &s.VOST, &s.Accessible, &s.Remaining); err != nil {
			return nil, err
		}
		if i, ok := index[s.FilmID]; ok {
			films[i].Showtimes = append(films[i].Showtimes, toShowtime(s))
		}
	}
	if err := srows.Err(); err != nil {
		return nil, err
	}
	if films == nil {
		films = []catalogue.Film{}
	}
	return films, nil
}

func toFilm(f model.Film) catalogue.Film {
	out := catalogue.Film{
		Title:           f.Title,
		Genres:          splitGenres(f.Genres),
		DurationMinutes: f.DurationMinutes,
		ViolenceWarning: f.Violence,
		Thrill:          catalogue.Flag(f.Thrill),
		New:             f.New,
		Poster:          f.Poster,
	}
	if f.MinAge.Valid {
		age := int(f.MinAge.Int64)
		out.MinAge = &age
	}
	return out
}

func toShowtime(s model.Showtime) catalogue.Showtime {
	return catalogue.Showtime{
		Start:      s.Start,
		End:        s.End,
		Room:       catalogue.Room(s.Room),
		IMAX:       s.IMAX,
		FourK:      s.FourK,
		VF:         s.VF,
		VOST:       s.VOST,
		Accessible: s.Accessible,
		Remaining:  remainingJSON(s.Remaining),
	}
}

func splitGenres(s string) []string {
	var out []string
	for _, g := range strings.Split(s, ",") {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}

// remainingJSON encodes a nullable count the way the JSON feed carries it.
func remainingJSON(n sql.NullInt64) json.RawMessage {
	if !n.Valid {
		return nil
	}
	return json.RawMessage(strconv.FormatInt(n.Int64, 10))
}

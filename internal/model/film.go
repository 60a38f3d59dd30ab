// Package model holds the row types of the MySQL catalogue tables.
package model

import "database/sql"

// Film is one row of the films table.
//
// Fields:
//
//	ID              – primary key identifier.
//	Title           – displayed title, also the lookup key of the flow.
//	Genres          – comma separated genre list.
//	DurationMinutes – running time.
//	MinAge          – minimum age, NULL when unrestricted.
//	Violence        – violence warning flag.
//	Thrill          – "frisson" mention flag.
//	New             – shown with the "Nouveau" badge.
//	Poster          – poster file name.
type Film struct {
	ID              uint64        // films.id
	Title           string        // films.titre
	Genres          string        // films.genres
	DurationMinutes int           // films.duree_minutes
	MinAge          sql.NullInt64 // films.age_minimum (nullable)
	Violence        bool          // films.avertissement_violence
	Thrill          bool          // films.mention_frisson
	New             bool          // films.nouveau
	Poster          string        // films.image
}

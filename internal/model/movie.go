package model

// Movie represents a film screened during the festival.  Movies carry
// a human-readable sequential identifier (m1, m2, ...) and are looked
// up by title when booking tickets.  Title is not unique at the schema
// level but the booking workflow treats it as a lookup key.
//
// Fields:
//  MovieID     – sequential identifier with the "m" prefix.
//  Title       – film title (required).
//  Director    – director name.
//  Year        – release year.
//  Genre       – genre label used by the frontend tabs.
//  JCCEdition  – festival edition the film is screened in.
//  ArabicTitle – localized title.
type Movie struct {
	MovieID     string `json:"movie_id"`     // movies.movie_id
	Title       string `json:"title"`        // movies.title
	Director    string `json:"director"`     // movies.director
	Year        int    `json:"year"`         // movies.year
	Genre       string `json:"genre"`        // movies.genre
	JCCEdition  string `json:"jcc_edition"`  // movies.jcc_edition
	ArabicTitle string `json:"arabic_title"` // movies.arabic_title
}

package models

import "regexp"

// FieldMissing is stored in place of any enrichment field the external
// providers could not supply.
const FieldMissing = "missing"

type Book struct {
	ID            string   `bson:"id" json:"id"`
	Title         string   `bson:"title" json:"title"`
	Authors       string   `bson:"authors" json:"authors"`
	ISBN          string   `bson:"ISBN" json:"ISBN"`
	Publisher     string   `bson:"publisher" json:"publisher"`
	PublishedDate string   `bson:"publishedDate" json:"publishedDate"`
	Genre         string   `bson:"genre" json:"genre"`
	Language      []string `bson:"language" json:"language"`
	Summary       string   `bson:"summary" json:"summary"`
}

// BookPatch carries optional field overrides for an update; a nil field is
// left unchanged.
type BookPatch struct {
	Title         *string   `json:"title"`
	Authors       *string   `json:"authors"`
	ISBN          *string   `json:"ISBN"`
	Publisher     *string   `json:"publisher"`
	PublishedDate *string   `json:"publishedDate"`
	Genre         *string   `json:"genre"`
	Language      *[]string `json:"language"`
	Summary       *string   `json:"summary"`
}

const (
	BookEntity = "book"

	ISBNLength = 13
)

var ValidGenres = map[string]bool{
	"Fiction":         true,
	"Children":        true,
	"Biography":       true,
	"Science":         true,
	"Science Fiction": true,
	"Fantasy":         true,
	"Other":           true,
}

func IsValidGenre(genre string) bool {
	return ValidGenres[genre]
}

func IsValidTitle(title string) bool {
	return len(title) > 0
}

var publishDatePattern = regexp.MustCompile(`^\d{4}(-\d{2}-\d{2})?$`)

// IsValidPublishDate accepts yyyy or yyyy-mm-dd.
func IsValidPublishDate(date string) bool {
	return publishDatePattern.MatchString(date)
}

var BookFields = map[string]bool{
	"id":            true,
	"title":         true,
	"authors":       true,
	"ISBN":          true,
	"publisher":     true,
	"publishedDate": true,
	"genre":         true,
	"language":      true,
	"summary":       true,
}

func IsBookField(field string) bool {
	return BookFields[field]
}

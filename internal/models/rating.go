package models

// Rating is the per-book aggregate of submitted rating values. It is created
// empty when the book is inserted and deleted together with the book.
type Rating struct {
	ID      string  `bson:"id" json:"id"`
	Title   string  `bson:"title" json:"title"`
	Values  []int   `bson:"values" json:"values"`
	Average float64 `bson:"average" json:"average"`
}

const (
	RatingEntity = "rating"

	MinRatingValue = 1
	MaxRatingValue = 5

	// MinRatingsForTop is the floor on recorded ratings for a book to be
	// eligible for the top-ranked query.
	MinRatingsForTop = 3
)

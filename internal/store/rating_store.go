package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"library-catalog/internal/models"
)

// RatingStore owns the per-book rating aggregates. Aggregates are created
// and destroyed by the book store alongside the book itself; this store only
// appends values and answers queries.
type RatingStore struct {
	Ratings *mongo.Collection

	mu sync.Mutex
}

func NewRatingStore(ratings *mongo.Collection) *RatingStore {
	return &RatingStore{Ratings: ratings}
}

// Rate appends an integral value in {1..5} to the book's aggregate and
// recomputes the running mean. It returns the new average.
func (s *RatingStore) Rate(ctx context.Context, bookID string, value float64) (float64, error) {
	if value != math.Trunc(value) || value < models.MinRatingValue || value > models.MaxRatingValue {
		return 0, NewValidationError("rating value must be an integer between 1 and 5")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var rating models.Rating
	err := s.Ratings.FindOne(ctx, bson.M{"id": bookID}).Decode(&rating)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}

	rating.Values = append(rating.Values, int(value))
	sum := 0
	for _, v := range rating.Values {
		sum += v
	}
	rating.Average = float64(sum) / float64(len(rating.Values))

	_, err = s.Ratings.UpdateOne(ctx,
		bson.M{"id": bookID},
		bson.M{"$set": bson.M{"values": rating.Values, "average": rating.Average}},
	)
	if err != nil {
		return 0, err
	}

	return rating.Average, nil
}

func (s *RatingStore) GetByBookID(ctx context.Context, bookID string) (models.Rating, error) {
	var rating models.Rating
	err := s.Ratings.FindOne(ctx, bson.M{"id": bookID}).Decode(&rating)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Rating{}, ErrNotFound
	}
	if err != nil {
		return models.Rating{}, err
	}
	return rating, nil
}

// GetAll filters aggregates by id, title or average. An unparseable average
// value matches nothing rather than failing the request.
func (s *RatingStore) GetAll(ctx context.Context, params map[string]string) ([]models.Rating, error) {
	filter := bson.M{}
	for field, value := range params {
		switch field {
		case "id", "title":
			filter[field] = value
		case "average":
			avg, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return []models.Rating{}, nil
			}
			filter[field] = avg
		default:
			return nil, NewValidationError(fmt.Sprintf("%s is not a recognized field", field))
		}
	}

	cursor, err := s.Ratings.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	ratings := []models.Rating{}
	if err := cursor.All(ctx, &ratings); err != nil {
		return nil, err
	}
	return ratings, nil
}

// TopRanked returns the aggregates holding the 3 highest distinct averages
// among books with at least MinRatingsForTop recorded ratings. Every
// aggregate sharing a qualifying average is included.
func (s *RatingStore) TopRanked(ctx context.Context) ([]models.Rating, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"$expr": bson.M{"$gte": bson.A{bson.M{"$size": "$values"}, models.MinRatingsForTop}},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":     "$average",
			"ratings": bson.M{"$push": "$$ROOT"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": -1}}},
		{{Key: "$limit", Value: 3}},
	}

	cursor, err := s.Ratings.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var groups []struct {
		Average float64         `bson:"_id"`
		Ratings []models.Rating `bson:"ratings"`
	}
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, err
	}

	top := []models.Rating{}
	for _, group := range groups {
		top = append(top, group.Ratings...)
	}
	return top, nil
}

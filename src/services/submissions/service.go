package submissions

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"formrunner/src/models"
)

var ErrSubmissionNotFound = errors.New("submission not found")

// Service persists and reads form submissions.
type Service struct {
	col *mongo.Collection
}

func NewService(col *mongo.Collection) *Service {
	return &Service{col: col}
}

// Create stores a submission and stamps its ID and creation time.
func (s *Service) Create(ctx context.Context, sub *models.Submission) (*models.Submission, error) {
	sub.ID = primitive.NewObjectID()
	sub.CreatedAt = time.Now()

	if _, err := s.col.InsertOne(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// CountSince counts submissions for a form from one IP since the given time.
// Backs the sliding-window throttle.
func (s *Service) CountSince(ctx context.Context, formID primitive.ObjectID, ip string, since time.Time) (int64, error) {
	filter := bson.M{
		"formId":    formID,
		"ip":        ip,
		"createdAt": bson.M{"$gte": since},
	}
	return s.col.CountDocuments(ctx, filter)
}

func (s *Service) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Submission, error) {
	var sub models.Submission
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&sub)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// GetByFormID lists a form's submissions, newest first.
func (s *Service) GetByFormID(ctx context.Context, formID primitive.ObjectID, limit int64) ([]models.Submission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := s.col.Find(ctx, bson.M{"formId": formID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	subs := []models.Submission{}
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrSubmissionNotFound
	}
	return nil
}

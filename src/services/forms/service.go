package forms

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"formrunner/src/models"
	"formrunner/src/settings"
)

// ErrFormNotFound is an operator error: submissions against an unknown form
// code are not a user-facing validation failure.
var ErrFormNotFound = errors.New("form not found")

// Service loads form definitions. Forms are read fresh at the start of each
// submission with their fields sorted and the settings store bound for
// override resolution.
type Service struct {
	col   *mongo.Collection
	store settings.Store
}

func NewService(col *mongo.Collection, store settings.Store) *Service {
	return &Service{col: col, store: store}
}

// LoadByCode fetches one form by its unique code, fields sorted by sortOrder.
func (s *Service) LoadByCode(ctx context.Context, code string) (*models.Form, error) {
	var form models.Form
	err := s.col.FindOne(ctx, bson.M{"code": code}).Decode(&form)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrFormNotFound
		}
		return nil, err
	}

	form.SortFields()
	form.BindSettings(s.store)
	return &form, nil
}

// Insert stores a form definition. Used by seeding and admin tooling.
func (s *Service) Insert(ctx context.Context, form *models.Form) error {
	_, err := s.col.InsertOne(ctx, form)
	return err
}

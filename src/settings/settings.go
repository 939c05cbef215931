package settings

import (
	"context"
	"sync"

	"github.com/spf13/cast"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is the process-wide key/value configuration. Forms may override any
// key, so a lookup miss here is normal and callers always supply a fallback.
type Store interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{}) error
}

// String reads key from the store, coercing whatever is stored to a string.
func String(s Store, key, fallback string) string {
	if s != nil {
		if v, ok := s.Get(key); ok {
			return cast.ToString(v)
		}
	}
	return fallback
}

// Bool reads key from the store, coercing whatever is stored to a bool.
func Bool(s Store, key string, fallback bool) bool {
	if s != nil {
		if v, ok := s.Get(key); ok {
			return cast.ToBool(v)
		}
	}
	return fallback
}

// Int reads key from the store, coercing whatever is stored to an int.
func Int(s Store, key string, fallback int) int {
	if s != nil {
		if v, ok := s.Get(key); ok {
			return cast.ToInt(v)
		}
	}
	return fallback
}

// Defaults are the built-in values used when neither a form override nor a
// stored setting exists. The seeder writes these into a fresh deployment.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"form_class":              "form",
		"field_class":             "form-control",
		"row_class":               "row",
		"group_class":             "form-group col-md-12",
		"label_class":             "form-label",
		"submit_class":            "btn btn-primary",
		"submit_text":             "Submit",
		"enable_cancel":           false,
		"cancel_class":            "btn btn-danger",
		"cancel_text":             "Cancel",
		"saves_data":              true,
		"store_ips":               true,
		"enable_recaptcha":        false,
		"enable_ip_restriction":   false,
		"max_requests_per_day":    5,
		"throttle_message":        "Failed to send due to too many requests.",
		"send_notifications":      true,
		"notification_template":   "mail/notification",
		"notification_recipients": "",
		"auto_reply":              false,
		"auto_reply_template":     "mail/autoreply",
		"queue_emails":            false,
		"enable_caching":          false,
		"cache_lifetime":          60,
		"on_success":              "hide",
		"on_success_message":      "Successfully sent",
		"on_success_redirect":     "/",
	}
}

// MemoryStore keeps settings in process memory. Used in tests and as the
// fallback when no settings collection is configured.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]interface{}
}

func NewMemoryStore(values map[string]interface{}) *MemoryStore {
	if values == nil {
		values = map[string]interface{}{}
	}
	return &MemoryStore{values: values}
}

func (s *MemoryStore) Get(key string) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemoryStore) Set(key string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// MongoStore persists settings as {_id: key, value: ...} documents.
type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(col *mongo.Collection) *MongoStore {
	return &MongoStore{col: col}
}

func (s *MongoStore) Get(key string) (interface{}, bool) {
	var doc struct {
		Value interface{} `bson:"value"`
	}
	err := s.col.FindOne(context.TODO(), bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		return nil, false
	}
	return doc.Value, true
}

func (s *MongoStore) Set(key string, value interface{}) error {
	_, err := s.col.UpdateOne(context.TODO(),
		bson.M{"_id": key},
		bson.M{"$set": bson.M{"value": value}},
		options.Update().SetUpsert(true),
	)
	return err
}

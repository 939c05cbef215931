package models

import (
	"html"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Submission is a stored record of one accepted, validated form post. Only
// created when the form saves data; the IP is stored only when the store_ips
// setting is enabled.
type Submission struct {
	ID        primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	FormID    primitive.ObjectID     `bson:"formId" json:"formId"`
	OriginURL string                 `bson:"url" json:"url"`
	Data      map[string]interface{} `bson:"data" json:"data"`
	IP        string                 `bson:"ip,omitempty" json:"ip,omitempty"`
	CreatedAt time.Time              `bson:"createdAt" json:"createdAt"`
}

// RenderValue renders a stored data value for display: multi-value entries
// join on newline, everything is HTML-escaped.
func RenderValue(value interface{}) string {
	switch v := value.(type) {
	case []string:
		return html.EscapeString(strings.Join(v, "\n"))
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			}
		}
		return html.EscapeString(strings.Join(parts, "\n"))
	case string:
		return html.EscapeString(v)
	default:
		return ""
	}
}

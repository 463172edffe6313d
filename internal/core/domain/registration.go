package domain

import "time"

// Registration is a single catalogued product record. Data carries the
// scraped attribute map the price model trains on; its shape is not fixed.
type Registration struct {
	ID          string         `json:"id" bson:"_id,omitempty"`
	Name        string         `json:"name" bson:"name"`
	Category    string         `json:"category" bson:"category"`
	ReleaseDate *time.Time     `json:"release_date,omitempty" bson:"release_date,omitempty"`
	Status      int            `json:"status" bson:"status"`
	Data        map[string]any `json:"data,omitempty" bson:"data,omitempty"`
	URL         string         `json:"url,omitempty" bson:"url,omitempty"`
	Source      string         `json:"source,omitempty" bson:"source,omitempty"`
	CreatedAt   time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" bson:"updated_at"`
}

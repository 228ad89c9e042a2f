package models

import (
	"time"

	"github.com/lib/pq"
)

// Subject is a single purchasable catalog entry scoped to a grade.
type Subject struct {
	ID        string         `db:"id" json:"id"`
	Name      string         `db:"name" json:"name"`
	Grade     Grade          `db:"grade" json:"grade"`
	ImageURLs pq.StringArray `db:"image_urls" json:"image_urls"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}

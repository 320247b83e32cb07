package apprepo

import "time"

// App is one catalog row. Json tag is used for caching.
type App struct {
	ID         int64  `json:"id" db:"id" validate:"required"` // serial primary key
	Title      string `json:"title" db:"title" validate:"required"`
	URL        string `json:"url" db:"url" validate:"required"`
	Image      string `json:"image" db:"image" validate:"-"`
	HealthPath string `json:"healthpath" db:"healthpath" validate:"-"`

	// CreatedAt is assigned by the database on insert and never updated.
	CreatedAt time.Time `json:"created_at" db:"created_at" validate:"-"`
}

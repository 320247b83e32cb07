package httptyped

import (
	"time"

	"github.com/mustyfdn/app-portal/internal/svc/appsvc"
)

// AppEntity is the wire shape of one catalog row.
type AppEntity struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	Image      string    `json:"image"`
	HealthPath string    `json:"healthpath"`
	CreatedAt  time.Time `json:"created_at"`
}

func AppEntityFromSvc(app appsvc.App) AppEntity {
	return AppEntity{
		ID:         app.ID,
		Title:      app.Title,
		URL:        app.URL,
		Image:      app.Image,
		HealthPath: app.HealthPath,
		CreatedAt:  app.CreatedAt,
	}
}

// ConfigEntity is the static configuration exposed on /api/config.
type ConfigEntity struct {
	CompanyName string `json:"companyName"`
	CompanyIcon string `json:"companyIcon"`
}

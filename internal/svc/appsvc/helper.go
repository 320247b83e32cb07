package appsvc

import "github.com/mustyfdn/app-portal/internal/svc/apprepo"

func AppFromRepo(app apprepo.App) App {
	return App{
		ID:         app.ID,
		Title:      app.Title,
		URL:        app.URL,
		Image:      app.Image,
		HealthPath: app.HealthPath,
		CreatedAt:  app.CreatedAt.UTC(),
	}
}

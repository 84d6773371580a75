package web

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/angelmondragon/subtrack/internal/subscriptions"
	"github.com/angelmondragon/subtrack/pkg/logger"
)

//go:embed templates static
var content embed.FS

var (
	usersPage         = mustParse("users.html")
	subscriptionsPage = mustParse("subscriptions.html")
)

func mustParse(page string) *template.Template {
	return template.Must(template.ParseFS(content, "templates/layout.html", "templates/"+page))
}

type pageData struct {
	Title     string
	Active    string
	CreatedAt string
	EndedAt   string
}

// UsersPage renders the user dashboard shell. The table itself is filled in
// by the page script against the JSON API.
func UsersPage(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, r, logg, usersPage, pageData{
			Title:  "Users",
			Active: "users",
		})
	}
}

// SubscriptionsPage renders the subscription dashboard shell with the create
// form's default date range prefilled server-side.
func SubscriptionsPage(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		createdAt := time.Now().UTC().Format(subscriptions.DateLayout)
		endedAt, err := subscriptions.DefaultEndedAt(createdAt)
		if err != nil {
			endedAt = ""
		}
		render(w, r, logg, subscriptionsPage, pageData{
			Title:     "Subscriptions",
			Active:    "subscriptions",
			CreatedAt: createdAt,
			EndedAt:   endedAt,
		})
	}
}

// Static serves the embedded assets. Mount under /static/.
func Static() http.Handler {
	return http.FileServer(http.FS(content))
}

func render(w http.ResponseWriter, r *http.Request, logg *logger.Logger, tpl *template.Template, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.ExecuteTemplate(w, "layout", data); err != nil {
		if logg != nil {
			logg.Error(r.Context(), "render page", err)
		}
	}
}

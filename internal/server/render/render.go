// Package render produces the HTML bodies served by the web handlers from
// templates embedded at build time.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"linkarchive/internal/server/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

type Renderer struct {
	t *template.Template
}

func New() (*Renderer, error) {
	t, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Renderer{t: t}, nil
}

// UsersLinks renders a user's link list. With editor set, the page includes
// the add-links form and the logout button.
func (r *Renderer) UsersLinks(user *models.User, links []models.Link, editor bool) (string, error) {
	data := struct {
		User   *models.User
		Links  []models.Link
		Editor bool
	}{user, links, editor}

	return r.execute("users-links.html", data)
}

// Login renders the login form page.
func (r *Renderer) Login() (string, error) {
	return r.execute("login.html", nil)
}

// FailedLogin renders the static page returned with every 401.
func (r *Renderer) FailedLogin() (string, error) {
	return r.execute("failed-login.html", nil)
}

func (r *Renderer) execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return buf.String(), nil
}

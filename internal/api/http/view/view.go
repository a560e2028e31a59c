package view

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/portfolio-website/portfolio-server/internal/api/http/flash"
	"github.com/portfolio-website/portfolio-server/web"
)

// Template names, as registered with the engine.
const (
	Index         = "index.html"
	About         = "about.html"
	Blog          = "blog.html"
	Contact       = "contact.html"
	Projects      = "projects.html"
	ProjectDetail = "project_detail.html"
	NotFound      = "404.html"
	ServerError   = "500.html"
)

// LoadTemplates parses every embedded page template into one set.
func LoadTemplates() (*template.Template, error) {
	tmpl, err := template.New("").
		Funcs(template.FuncMap{"hasPrefix": strings.HasPrefix}).
		ParseFS(web.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

// Render writes a page with the data every template expects: current path,
// pending flash notices and the current year.
func Render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Path"] = c.Request.URL.Path
	data["Flashes"] = flash.Collect(c)
	data["CurrentYear"] = time.Now().UTC().Year()

	c.HTML(status, name, data)
}

package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/portfolio-website/portfolio-server/internal/api/http/view"
	"github.com/portfolio-website/portfolio-server/internal/logging"
)

// PagesHandler serves the template-only pages and the error fallbacks.
type PagesHandler struct {
	robots []byte
}

func NewPagesHandler(robots []byte) *PagesHandler {
	return &PagesHandler{robots: robots}
}

func (h *PagesHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.static(view.Index, ""))
	r.GET("/about", h.static(view.About, "About"))
	r.GET("/blog", h.static(view.Blog, "Blog"))
	r.GET("/robots.txt", h.robotsTxt)
}

func (h *PagesHandler) static(name, title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		view.Render(c, http.StatusOK, name, gin.H{"Title": title})
	}
}

func (h *PagesHandler) robotsTxt(c *gin.Context) {
	c.Data(http.StatusOK, "text/plain; charset=utf-8", h.robots)
}

// NotFound renders the 404 page for unmatched routes.
func (h *PagesHandler) NotFound(c *gin.Context) {
	view.Render(c, http.StatusNotFound, view.NotFound, gin.H{"Title": "Not found"})
}

// Recover turns a panic into the generic error page. Details only go to
// the log.
func (h *PagesHandler) Recover(c *gin.Context, recovered any) {
	logging.NewLogger(c.Request.Context()).LogError("http.recover",
		fmt.Errorf("panic: %v (path %s)", recovered, c.Request.URL.Path))
	ServerError(c)
}

// ServerError renders the generic 500 page and stops the handler chain.
func ServerError(c *gin.Context) {
	view.Render(c, http.StatusInternalServerError, view.ServerError, gin.H{"Title": "Error"})
	c.Abort()
}

package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/portfolio-website/portfolio-server/internal/api/http/flash"
	"github.com/portfolio-website/portfolio-server/internal/api/http/view"
	"github.com/portfolio-website/portfolio-server/internal/logging"
	"github.com/portfolio-website/portfolio-server/internal/projects/domain"
)

// Notices shown to visitors.
const (
	msgListUnavailable = "Could not load projects at this time."
	msgNotFound        = "Project not found."
	msgUnavailable     = "Could not load the project at this time."
)

// Projects is what the handlers need from the project service.
type Projects interface {
	ListProjects(ctx context.Context) ([]domain.ProjectView, error)
	GetProject(ctx context.Context, id string) (*domain.ProjectView, error)
}

// StoreErrorObserver is told about every store failure the handlers absorb.
type StoreErrorObserver func(operation, kind string)

type Handler struct {
	projects Projects
	observe  StoreErrorObserver
}

func New(projects Projects, observe StoreErrorObserver) *Handler {
	if observe == nil {
		observe = func(string, string) {}
	}
	return &Handler{projects: projects, observe: observe}
}

// list renders the listing. A store outage still renders the page, empty,
// with a notice.
func (h *Handler) list(c *gin.Context) {
	items, err := h.projects.ListProjects(c.Request.Context())
	if err != nil {
		h.storeFailure(c, "list", err)
		flash.Now(c, flash.Danger, msgListUnavailable)
		items = []domain.ProjectView{}
	}

	view.Render(c, http.StatusOK, view.Projects, gin.H{
		"Title":    "Projects",
		"Projects": items,
	})
}

// detail renders one project. Any failure becomes a notice and a redirect
// back to the listing, never a broken page.
func (h *Handler) detail(c *gin.Context) {
	p, err := h.projects.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.storeFailure(c, "get", err)
		if errors.Is(err, domain.ErrProjectNotFound) {
			flash.Add(c, flash.Warning, msgNotFound)
		} else {
			flash.Add(c, flash.Danger, msgUnavailable)
		}
		c.Redirect(http.StatusFound, "/projects")
		return
	}

	view.Render(c, http.StatusOK, view.ProjectDetail, gin.H{
		"Title":   p.Title,
		"Project": p,
	})
}

func (h *Handler) apiList(c *gin.Context) {
	items, err := h.projects.ListProjects(c.Request.Context())
	if err != nil {
		h.storeFailure(c, "list", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": msgListUnavailable})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) apiGet(c *gin.Context) {
	p, err := h.projects.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.storeFailure(c, "get", err)
		if errors.Is(err, domain.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": msgUnavailable})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) storeFailure(c *gin.Context, operation string, err error) {
	kind := "unavailable"
	if errors.Is(err, domain.ErrProjectNotFound) {
		kind = "not_found"
	} else {
		logging.NewLogger(c.Request.Context()).LogError("projects."+operation, err)
	}
	h.observe(operation, kind)
}

package http

import "github.com/gin-gonic/gin"

// RegisterPages attaches the HTML project routes.
func (h *Handler) RegisterPages(r gin.IRouter) {
	r.GET("/projects", h.list)
	r.GET("/projects/:id", h.detail)
}

// RegisterAPI attaches the JSON routes to the given router group.
func (h *Handler) RegisterAPI(rg *gin.RouterGroup) {
	rg.GET("/projects", h.apiList)
	rg.GET("/projects/:id", h.apiGet)
}

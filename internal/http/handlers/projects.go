package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type createProjectRequest struct {
	Name string `json:"name"`
}

func (h *Handler) ListProjects(c *gin.Context) {
	t, ok := h.todo(c)
	if !ok {
		return
	}
	projects, err := t.ListProjects(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, projects)
}

func (h *Handler) CreateProject(c *gin.Context) {
	if err := requireJSON(c); err != nil {
		failErr(c, err)
		return
	}
	var req createProjectRequest
	if err := decodeJSON(c, &req); err != nil {
		failErr(c, err)
		return
	}
	t, ok := h.todo(c)
	if !ok {
		return
	}

	p, err := t.CreateProject(c.Request.Context(), req.Name)
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusCreated, p)
}

func (h *Handler) GetProject(c *gin.Context) {
	t, ok := h.todo(c)
	if !ok {
		return
	}
	p, err := t.FindProjectByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		failErr(c, err)
		return
	}
	if p == nil {
		fail(c, http.StatusNotFound, "Project not found")
		return
	}
	respond(c, http.StatusOK, p)
}

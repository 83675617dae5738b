package handlers

import (
	"errors"
	"net/http"
	"strings"

	"todo_api/internal/domain"
	"todo_api/internal/logger"
	"todo_api/internal/service"
	"todo_api/internal/ws"

	"github.com/gin-gonic/gin"
)

// Notifier receives the task changes made through the API.
type Notifier interface {
	Publish(username string, ev ws.Event)
}

type Handler struct {
	Resolver        *service.Resolver
	Events          Notifier
	DefaultUsername string
}

func NewHandler(resolver *service.Resolver, events Notifier, defaultUsername string) *Handler {
	return &Handler{Resolver: resolver, Events: events, DefaultUsername: defaultUsername}
}

// username returns the caller's username from the X-Username header, or the
// configured default.
func (h *Handler) username(c *gin.Context) string {
	if u := strings.TrimSpace(c.GetHeader("X-Username")); u != "" {
		return u
	}
	return h.DefaultUsername
}

// todo resolves the caller's facade. On failure the response is already
// written and ok is false.
func (h *Handler) todo(c *gin.Context) (*service.Todo, bool) {
	t, err := h.Resolver.Resolve(c.Request.Context(), h.username(c))
	if err != nil {
		failErr(c, err)
		return nil, false
	}
	return t, true
}

func (h *Handler) publish(t *service.Todo, typ string, task *domain.Task) {
	if h.Events == nil {
		return
	}
	h.Events.Publish(t.User().Username, ws.Event{Type: typ, Task: task})
}

func respond(c *gin.Context, status int, result any) {
	c.JSON(status, gin.H{"result": result})
}

func fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": gin.H{"message": msg}})
}

// failErr maps the domain error kinds to a status code.
func failErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		fail(c, http.StatusNotFound, err.Error())
	default:
		logger.WithContext(c.Request.Context()).Error("request failed", "error", err)
		fail(c, http.StatusInternalServerError, err.Error())
	}
}

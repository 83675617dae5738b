package handlers

import (
	"net/http"

	"todo_api/internal/service"

	"github.com/gin-gonic/gin"
)

type createUserRequest struct {
	Username string `json:"username"`
}

// CreateUser creates the user, or brings back a deleted user of the same
// name with its original id.
func (h *Handler) CreateUser(c *gin.Context) {
	if err := requireJSON(c); err != nil {
		failErr(c, err)
		return
	}
	var req createUserRequest
	if err := decodeJSON(c, &req); err != nil {
		failErr(c, err)
		return
	}

	t, err := service.NewTodo(c.Request.Context(), h.Resolver.Store(), req.Username, true)
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusCreated, t.User())
}

package handlers

import (
	"net/http"

	"todo_api/internal/ws"

	"github.com/gin-gonic/gin"
)

// ListTasks returns the caller's tasks, filtered by the query parameters.
func (h *Handler) ListTasks(c *gin.Context) {
	filter, err := filterFromQuery(c)
	if err != nil {
		failErr(c, err)
		return
	}
	t, ok := h.todo(c)
	if !ok {
		return
	}

	tasks, err := t.ListTasks(c.Request.Context(), filter)
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, tasks)
}

func (h *Handler) CreateTask(c *gin.Context) {
	if err := requireJSON(c); err != nil {
		failErr(c, err)
		return
	}
	var p taskPayload
	if err := decodeJSON(c, &p); err != nil {
		failErr(c, err)
		return
	}
	if p.Title.Value == nil || *p.Title.Value == "" {
		fail(c, http.StatusBadRequest, "title is required")
		return
	}

	t, ok := h.todo(c)
	if !ok {
		return
	}
	task, err := t.CreateTask(c.Request.Context(), *p.Title.Value, p.attributes())
	if err != nil {
		failErr(c, err)
		return
	}
	h.publish(t, ws.MsgTaskCreated, task)
	respond(c, http.StatusCreated, task)
}

func (h *Handler) GetTask(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	t, ok := h.todo(c)
	if !ok {
		return
	}

	task, err := t.FindTask(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	if task == nil {
		fail(c, http.StatusNotFound, "Task not found")
		return
	}
	respond(c, http.StatusOK, task)
}

// UpdateTask applies a partial update. Keys missing from the body keep
// their stored value; an explicit null clears description, deadline or
// project_id.
func (h *Handler) UpdateTask(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	var p taskPayload
	if err := decodeJSON(c, &p); err != nil {
		failErr(c, err)
		return
	}
	t, ok := h.todo(c)
	if !ok {
		return
	}

	task, err := t.EditTask(c.Request.Context(), id, p.attributes())
	if err != nil {
		failErr(c, err)
		return
	}
	if task == nil {
		fail(c, http.StatusNotFound, "Task not found")
		return
	}
	h.publish(t, ws.MsgTaskUpdated, task)
	respond(c, http.StatusOK, task)
}

// DeleteTask soft-deletes the task and returns it as it was before.
func (h *Handler) DeleteTask(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	t, ok := h.todo(c)
	if !ok {
		return
	}

	task, err := t.DeleteTask(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	if task == nil {
		fail(c, http.StatusNotFound, "Task not found")
		return
	}
	h.publish(t, ws.MsgTaskDeleted, task)
	respond(c, http.StatusOK, task)
}

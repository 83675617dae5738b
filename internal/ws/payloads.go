package ws

import "todo_api/internal/domain"

// Event is a message pushed to the subscribers of one user.
type Event struct {
	Type string       `json:"type"`
	Task *domain.Task `json:"task,omitempty"`
}

// client → server
type Request struct {
	Type string `json:"type"`
}

type ErrorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

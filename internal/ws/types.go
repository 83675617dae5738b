package ws

const (
	// client - server
	MsgPing = "ping"

	// server - client
	MsgReady       = "ready"
	MsgPong        = "pong"
	MsgTaskCreated = "task_created"
	MsgTaskUpdated = "task_updated"
	MsgTaskDeleted = "task_deleted"
	MsgError       = "error"
)

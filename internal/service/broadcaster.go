package service

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToProject(projectID string, msgType string, payload interface{})
	DisconnectProject(projectID string)
}

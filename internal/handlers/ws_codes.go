// internal/handlers/ws_codes.go
package handlers

import "github.com/coder/websocket"

// Custom WebSocket close codes used by the game stream.
const (
	BadSubprotocolError websocket.StatusCode = 3000 // Client connected with an unsupported subprotocol.
	GameClosedCode      websocket.StatusCode = 3004 // The watched game was deleted.
	SlowConsumerCode    websocket.StatusCode = 3005 // The watcher fell too far behind the event stream.
)

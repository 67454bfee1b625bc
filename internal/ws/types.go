package ws

const (
	// server - client
	MsgStatus = "status"
	MsgError  = "error"
)

// Message is the envelope of every frame the server writes.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

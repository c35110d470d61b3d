package websocket

import "encoding/json"

// Message is the envelope for everything crossing the socket, tagged with
// a type and carrying an opaque payload.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func newMessage(msgType string, payload any) Message {
	return Message{
		Type:    msgType,
		Payload: mustMarshal(payload),
	}
}

func mustMarshal(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

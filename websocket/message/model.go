package message

import (
	"encoding/json"
)

type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type StartRoundPayload struct {
	Level string `json:"level"`
}

type AnswerPayload struct {
	Answer string `json:"answer"`
}

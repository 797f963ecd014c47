package transport

import (
	"log"

	"github.com/banana-math/BananaMathServer/internal/round/state"
)

type OutgoingMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

func SendToPlayer(playerID string, msg OutgoingMessage) {
	player := state.GetPlayer(playerID)
	if player == nil {
		return
	}

	player.ConnMu.Lock()
	defer player.ConnMu.Unlock()

	if err := player.Conn.WriteJSON(msg); err != nil {
		log.Println("Error sending msg to", playerID, ":", err)
	}
}

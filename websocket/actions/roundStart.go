package actions

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/banana-math/BananaMathServer/internal/apperrors"
	"github.com/banana-math/BananaMathServer/internal/round"
	"github.com/banana-math/BananaMathServer/internal/round/state"
	"github.com/banana-math/BananaMathServer/websocket/message"
	"github.com/banana-math/BananaMathServer/websocket/transport"
)

func HandleRoundStart(playerId string, msg message.Message) {
	player := state.GetPlayer(playerId)
	if player == nil {
		return
	}

	var payload message.StartRoundPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Println("Error decoding round start payload:", err)
		sendError(playerId, "invalid request")
		return
	}

	_, err := RoundService.StartRound(context.Background(), player.Session, round.Level(payload.Level))
	if errors.Is(err, round.ErrRoundCancelled) {
		return
	}
	if err != nil {
		log.Println("Error starting round for", playerId, ":", err)
		sendError(playerId, apperrors.Message(err))
	}
}

func sendError(playerId string, msg string) {
	transport.SendToPlayer(playerId, transport.OutgoingMessage{
		Type:    "ERROR",
		Payload: map[string]interface{}{"message": msg},
	})
}

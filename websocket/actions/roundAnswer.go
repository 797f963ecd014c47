package actions

import (
	"encoding/json"
	"log"

	"github.com/banana-math/BananaMathServer/internal/apperrors"
	"github.com/banana-math/BananaMathServer/internal/round/state"
	"github.com/banana-math/BananaMathServer/websocket/message"
	"github.com/banana-math/BananaMathServer/websocket/transport"
)

func HandleRoundAnswer(playerId string, msg message.Message) {
	player := state.GetPlayer(playerId)
	if player == nil {
		return
	}

	var payload message.AnswerPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Println("Error decoding answer payload:", err)
		sendError(playerId, "invalid request")
		return
	}

	result, err := RoundService.SubmitAnswer(player.Session, payload.Answer)
	if err != nil {
		sendError(playerId, apperrors.Message(err))
		return
	}

	transport.SendToPlayer(playerId, transport.OutgoingMessage{
		Type:    "ANSWER_RESULT",
		Payload: result,
	})
}

package actions

import (
	"github.com/banana-math/BananaMathServer/internal/round/state"
	"github.com/banana-math/BananaMathServer/websocket/message"
	"github.com/banana-math/BananaMathServer/websocket/transport"
)

func HandleNewGame(playerId string, msg message.Message) {
	player := state.GetPlayer(playerId)
	if player == nil {
		return
	}

	RoundService.NewGame(player.Session)

	transport.SendToPlayer(playerId, transport.OutgoingMessage{
		Type:    "GAME_RESET",
		Payload: map[string]interface{}{"score": 0},
	})
}

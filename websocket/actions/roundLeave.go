package actions

import (
	"github.com/banana-math/BananaMathServer/internal/round/state"
	"github.com/banana-math/BananaMathServer/websocket/message"
)

// HandleRoundLeave cancels the live round when the player navigates away
// from the game view. The session and its score survive.
func HandleRoundLeave(playerId string, msg message.Message) {
	player := state.GetPlayer(playerId)
	if player == nil {
		return
	}

	RoundService.Cancel(player.Session)
}

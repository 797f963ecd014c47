package actions

import (
	"github.com/banana-math/BananaMathServer/internal/round"
	"github.com/banana-math/BananaMathServer/websocket/transport"
)

// RoundService is wired from main before any connection is accepted.
var RoundService *round.RoundService

// WsNotifier pushes round events to the owning player's websocket.
type WsNotifier struct{}

func NewWsNotifier() *WsNotifier {
	return &WsNotifier{}
}

func (n *WsNotifier) RoundStarted(playerID string, info *round.RoundInfo) {
	transport.SendToPlayer(playerID, transport.OutgoingMessage{
		Type:    "ROUND_STARTED",
		Payload: info,
	})
}

func (n *WsNotifier) RoundTick(playerID string, remaining int) {
	transport.SendToPlayer(playerID, transport.OutgoingMessage{
		Type:    "ROUND_TICK",
		Payload: map[string]interface{}{"timeRemaining": remaining},
	})
}

func (n *WsNotifier) RoundExpired(playerID string) {
	transport.SendToPlayer(playerID, transport.OutgoingMessage{
		Type: "ROUND_EXPIRED",
	})
}

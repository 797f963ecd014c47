package router

import (
	"log"

	"github.com/banana-math/BananaMathServer/websocket/actions"
	"github.com/banana-math/BananaMathServer/websocket/message"
)

var handlers = map[string]func(playerId string, payload message.Message){
	"NEW_GAME":     actions.HandleNewGame,
	"ROUND_START":  actions.HandleRoundStart,
	"ROUND_ANSWER": actions.HandleRoundAnswer,
	"ROUND_LEAVE":  actions.HandleRoundLeave,
}

func RouteMessage(playerId string, msg message.Message) {
	if handler, ok := handlers[msg.Type]; ok {
		handler(playerId, msg)
	} else {
		log.Println("Unknown message type:", msg.Type)
	}
}

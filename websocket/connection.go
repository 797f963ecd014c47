package websocket

import (
	"encoding/json"
	"log"

	"github.com/banana-math/BananaMathServer/internal/round/state"
	"github.com/banana-math/BananaMathServer/websocket/actions"
	"github.com/banana-math/BananaMathServer/websocket/message"
	"github.com/banana-math/BananaMathServer/websocket/router"
)

func listenPlayerMessages(player *state.PlayerState) {
	defer func() {
		log.Printf("Player disconnected: %s", player.ID)
		// A dropped connection must not leave a ticking countdown behind.
		actions.RoundService.Cancel(player.Session)
		state.UnregisterPlayer(player.ID)
		player.Conn.Close()
	}()

	for {
		_, data, err := player.Conn.ReadMessage()
		if err != nil {
			log.Println("Error reading message:", err)
			break
		}

		var msg message.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Println("Error decoding message:", err)
			continue
		}

		router.RouteMessage(player.ID, msg)
	}
}

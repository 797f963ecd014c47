package state

import (
	"sync"

	"github.com/banana-math/BananaMathServer/internal/round"
	"github.com/gorilla/websocket"
)

type PlayerState struct {
	ID      string
	Conn    *websocket.Conn
	ConnMu  sync.Mutex
	Session *round.Session
}

var (
	players   = make(map[string]*PlayerState)
	playersMu sync.RWMutex
)

func RegisterPlayer(id, username string, conn *websocket.Conn) *PlayerState {
	playersMu.Lock()
	defer playersMu.Unlock()

	player := &PlayerState{
		ID:      id,
		Conn:    conn,
		Session: round.NewSession(id, username),
	}
	players[id] = player
	return player
}

func UnregisterPlayer(id string) {
	playersMu.Lock()
	defer playersMu.Unlock()

	delete(players, id)
}

func GetPlayer(id string) *PlayerState {
	playersMu.RLock()
	defer playersMu.RUnlock()

	return players[id]
}

package websocket

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/banana-math/BananaMathServer/internal/round/state"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var (
	upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
)

func WebSocketHandler(c echo.Context) error {
	tokenString := c.QueryParam("token")

	userID, username, err := ValidateJWT(tokenString)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Println("WebSocket upgrade failed:", err)
		return err
	}

	log.Printf("Player connected: %s (%s)", userID, username)
	player := state.RegisterPlayer(userID, username, ws)
	go listenPlayerMessages(player)

	return nil
}

func ValidateJWT(tokenString string) (string, string, error) {
	if tokenString == "" {
		return "", "", errors.New("empty token")
	}

	claims := jwt.MapClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid token")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return "", "", fmt.Errorf("invalid token: %v", err)
	}

	userID, ok := claims["id"].(float64)
	if !ok {
		return "", "", errors.New("id not found in token claims")
	}

	username, ok := claims["username"].(string)
	if !ok {
		return "", "", errors.New("username not found in token claims")
	}

	return strconv.Itoa(int(userID)), username, nil
}

package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	api_middleware "github.com/banana-math/BananaMathServer/api/middleware"
	v1 "github.com/banana-math/BananaMathServer/api/v1"
	"github.com/banana-math/BananaMathServer/internal/leaderboard"
	"github.com/banana-math/BananaMathServer/internal/puzzle"
	"github.com/banana-math/BananaMathServer/internal/round"
	"github.com/banana-math/BananaMathServer/internal/user"
	"github.com/banana-math/BananaMathServer/pkg/clock"
	"github.com/banana-math/BananaMathServer/pkg/db"
	"github.com/banana-math/BananaMathServer/websocket"
	"github.com/banana-math/BananaMathServer/websocket/actions"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("File .env not found, using system values")
	}

	db.Init()
	db.DB.AutoMigrate(&user.User{}, &leaderboard.Score{})

	userRepo := user.NewGormUserRepository()
	codeStore := user.NewRedisCodeStore(db.Rdb)
	v1.UserService = user.NewUserService(userRepo, codeStore)

	scoreRepo := leaderboard.NewGormScoreRepository()
	scoreCache := leaderboard.NewRedisScoreCache(db.Rdb)
	v1.ScoreService = leaderboard.NewScoreService(scoreRepo, userRepo, scoreCache, clock.New())

	provider := puzzle.NewBananaProvider("")
	actions.RoundService = round.NewRoundService(provider, v1.ScoreService, actions.NewWsNotifier())

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Paths the web client calls directly.
	v1.RegisterAuthRoutes(e)
	v1.RegisterLeaderboardRoutes(e)

	api := e.Group("/api/v1")
	v1.RegisterUserRoutes(api.Group("/users"))
	v1.RegisterScoreRoutes(api.Group("/scores"))

	me := api.Group("/users")
	me.Use(api_middleware.SetupJWTMiddleware())
	v1.RegisterProtectedUserRoutes(me)

	e.GET("/game", websocket.WebSocketHandler)

	e.Logger.Fatal(e.Start(":8080"))
}

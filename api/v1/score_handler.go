package v1

import (
	"net/http"

	"github.com/banana-math/BananaMathServer/internal/apperrors"
	"github.com/banana-math/BananaMathServer/internal/leaderboard"
	"github.com/labstack/echo/v4"
)

var ScoreService *leaderboard.ScoreService

func RegisterLeaderboardRoutes(e *echo.Echo) {
	e.POST("/save_score", SaveScoreHandler)
	e.GET("/get_scores", GetScoresHandler)
}

func RegisterScoreRoutes(g *echo.Group) {
	g.POST("", SaveScoreHandler)
	g.GET("", GetScoresHandler)
}

func SaveScoreHandler(c echo.Context) error {
	var req leaderboard.ScoreRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, INVALID_REQUEST)
	}

	if err := ScoreService.SaveScore(&req); err != nil {
		return fail(c, apperrors.Message(err))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Score saved successfully",
	})
}

func GetScoresHandler(c echo.Context) error {
	scores, err := ScoreService.TopScores()
	if err != nil {
		return fail(c, apperrors.Message(err))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"scores":  scores,
	})
}

package v1

import (
	"net/http"

	"github.com/banana-math/BananaMathServer/internal/apperrors"
	"github.com/banana-math/BananaMathServer/internal/user"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const INVALID_REQUEST = "invalid request"

var UserService *user.UserService

// RegisterAuthRoutes mounts the public auth endpoints at the paths the web
// client calls. Failures are encoded in the body, not the status code.
func RegisterAuthRoutes(e *echo.Echo) {
	e.POST("/register", RegisterHandler)
	e.POST("/login", LoginHandler)
	e.POST("/verify", VerifyHandler)
}

func RegisterUserRoutes(g *echo.Group) {
	g.POST("/register", RegisterHandler)
	g.POST("/login", LoginHandler)
	g.POST("/verify", VerifyHandler)
}

func RegisterProtectedUserRoutes(g *echo.Group) {
	g.GET("/me", MeHandler)
}

func RegisterHandler(c echo.Context) error {
	var req user.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, INVALID_REQUEST)
	}

	resp, err := UserService.Register(&req)
	if err != nil {
		return fail(c, apperrors.Message(err))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Registration successful",
		"user":    resp.User,
		"token":   resp.Token,
		"code":    resp.Code,
	})
}

func LoginHandler(c echo.Context) error {
	var req user.LoginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, INVALID_REQUEST)
	}

	resp, err := UserService.Login(&req)
	if err != nil {
		return fail(c, apperrors.Message(err))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Login successful",
		"user":    resp.User,
		"token":   resp.Token,
		"code":    resp.Code,
	})
}

func VerifyHandler(c echo.Context) error {
	var req user.VerifyRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, INVALID_REQUEST)
	}

	if err := UserService.Verify(&req); err != nil {
		return fail(c, apperrors.Message(err))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Verification successful",
	})
}

func MeHandler(c echo.Context) error {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	claims, ok := token.Claims.(*user.JwtCustomClaims)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}

	profile, err := UserService.GetProfile(int(claims.Id))
	if err != nil {
		return fail(c, apperrors.Message(err))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"user":    profile,
	})
}

func fail(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, echo.Map{
		"success": false,
		"message": message,
	})
}

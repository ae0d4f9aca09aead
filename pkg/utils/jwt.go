package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
)

const TokenTTL = time.Hour * 24

var ErrMissingClaims = errors.New("token carries no user claims")

type TokenUser struct {
	ID       string
	Username string
	Email    string
	Role     string
}

func CreateJWTToken(user TokenUser, jwtSecretKey string) (string, error) {
	claims := jwt.MapClaims{}
	claims["id"] = user.ID
	claims["username"] = user.Username
	claims["email"] = user.Email
	claims["role"] = user.Role
	claims["exp"] = time.Now().Add(TokenTTL).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(jwtSecretKey))
}

// ExtractTokenUser reads the claims the JWT middleware stored under "user".
func ExtractTokenUser(c echo.Context) (TokenUser, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok || !token.Valid {
		return TokenUser{}, ErrMissingClaims
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenUser{}, ErrMissingClaims
	}

	id, _ := claims["id"].(string)
	if id == "" {
		return TokenUser{}, ErrMissingClaims
	}

	username, _ := claims["username"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return TokenUser{ID: id, Username: username, Email: email, Role: role}, nil
}

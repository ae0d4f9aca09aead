package utils

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOrderNumber(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	number := GenerateOrderNumber(now)

	assert.Regexp(t, regexp.MustCompile(`^ORD-1700000000123-[0-9A-Z]{5}$`), number)
}

func TestCreateAndExtractJWTToken(t *testing.T) {
	secret := "test-secret"
	signed, err := CreateJWTToken(TokenUser{ID: "abc", Username: "anna", Email: "anna@example.com", Role: "admin"}, secret)
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)

	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.Set("user", token)

	user, err := ExtractTokenUser(c)
	require.NoError(t, err)
	assert.Equal(t, TokenUser{ID: "abc", Username: "anna", Email: "anna@example.com", Role: "admin"}, user)

	claims := token.Claims.(jwt.MapClaims)
	exp := int64(claims["exp"].(float64))
	assert.InDelta(t, time.Now().Add(TokenTTL).Unix(), exp, 5)
}

func TestExtractTokenUser_NoToken(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, err := ExtractTokenUser(c)
	assert.ErrorIs(t, err, ErrMissingClaims)
}

package controller

import (
	"net/http"

	"github.com/dmitryhil/vineweb/internal/dto"
	"github.com/dmitryhil/vineweb/internal/service"
	"github.com/dmitryhil/vineweb/pkg/errs"
	"github.com/dmitryhil/vineweb/pkg/response"
	"github.com/dmitryhil/vineweb/pkg/utils"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type AuthController struct {
	service service.UserService
}

func CreateAuthController(g *echo.Group, service service.UserService, isLoggedIn echo.MiddlewareFunc, rateLimit echo.MiddlewareFunc) {
	c := AuthController{
		service: service,
	}
	g.POST("/auth/register", c.Register, rateLimit)
	g.POST("/auth/login", c.Login, rateLimit)
	g.GET("/auth/me", c.Me, isLoggedIn)
	g.GET("/auth/test", c.Test, isLoggedIn)
}

func (c *AuthController) Register(e echo.Context) error {
	payload := dto.RegisterRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "Register").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	if err := e.Validate(payload); err != nil {
		return response.WriteValidationResponse(e, err)
	}

	res, err := c.service.Register(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, http.StatusCreated, res)
}

func (c *AuthController) Login(e echo.Context) error {
	payload := dto.LoginRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "Login").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	if err := e.Validate(payload); err != nil {
		return response.WriteValidationResponse(e, err)
	}

	res, err := c.service.Login(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, http.StatusOK, res)
}

func (c *AuthController) Me(e echo.Context) error {
	user, err := utils.ExtractTokenUser(e)
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrInvalidToken, nil)
	}

	res, err := c.service.GetUserByID(e.Request().Context(), user.ID)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, http.StatusOK, res)
}

func (c *AuthController) Test(e echo.Context) error {
	user, err := utils.ExtractTokenUser(e)
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrInvalidToken, nil)
	}

	return response.WriteSuccessResponse(e, http.StatusOK, map[string]interface{}{
		"message": "Authenticated",
		"user": map[string]string{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}

package controller

import (
	"net/http"

	"github.com/dmitryhil/vineweb/internal/service"
	"github.com/dmitryhil/vineweb/pkg/response"
	"github.com/labstack/echo/v4"
)

type AdminController struct {
	service service.StatsService
}

func CreateAdminController(g *echo.Group, service service.StatsService, isLoggedIn echo.MiddlewareFunc, isAdmin echo.MiddlewareFunc) {
	c := AdminController{
		service: service,
	}

	admin := g.Group("/admin", isLoggedIn, isAdmin)
	admin.GET("/stats", c.GetStats)
	admin.GET("/test", c.Test)
}

func (c *AdminController) GetStats(e echo.Context) error {
	stats, err := c.service.GetStats(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, http.StatusOK, stats)
}

func (c *AdminController) Test(e echo.Context) error {
	return response.WriteMessageResponse(e, "Admin access granted")
}

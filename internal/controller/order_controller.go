package controller

import (
	"net/http"

	"github.com/dmitryhil/vineweb/internal/dto"
	"github.com/dmitryhil/vineweb/internal/service"
	pkgdto "github.com/dmitryhil/vineweb/pkg/dto"
	"github.com/dmitryhil/vineweb/pkg/errs"
	"github.com/dmitryhil/vineweb/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type OrderController struct {
	service service.OrderService
}

func CreateOrderController(g *echo.Group, service service.OrderService, isLoggedIn echo.MiddlewareFunc, isAdmin echo.MiddlewareFunc) {
	c := OrderController{
		service: service,
	}
	g.POST("/orders", c.AddOrder)
	g.GET("/orders", c.GetOrders, isLoggedIn, isAdmin)
	g.GET("/orders/:id", c.GetOrder, isLoggedIn, isAdmin)
	g.PUT("/orders/:id/status", c.UpdateOrderStatus, isLoggedIn, isAdmin)
	g.PUT("/orders/:id/payment-status", c.UpdatePaymentStatus, isLoggedIn, isAdmin)
}

func (c *OrderController) AddOrder(e echo.Context) error {
	payload := dto.OrderRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "AddOrder").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	if err := e.Validate(payload); err != nil {
		return response.WriteValidationResponse(e, err)
	}

	order, err := c.service.AddOrder(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, http.StatusCreated, order)
}

func (c *OrderController) GetOrders(e echo.Context) error {
	filter := pkgdto.Filter{}
	if err := e.Bind(&filter); err != nil {
		// Unparsable page/limit fall back to the defaults.
		filter = pkgdto.Filter{Status: e.QueryParam("status")}
	}

	res, err := c.service.GetOrders(e.Request().Context(), filter)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, http.StatusOK, res)
}

func (c *OrderController) GetOrder(e echo.Context) error {
	order, err := c.service.GetOrderByID(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, http.StatusOK, order)
}

func (c *OrderController) UpdateOrderStatus(e echo.Context) error {
	payload := dto.OrderStatusRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "UpdateOrderStatus").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	if err := e.Validate(payload); err != nil {
		return response.WriteValidationResponse(e, err)
	}

	payload.ID = e.Param("id")
	order, err := c.service.UpdateOrderStatus(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, http.StatusOK, order)
}

func (c *OrderController) UpdatePaymentStatus(e echo.Context) error {
	payload := dto.PaymentStatusRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "UpdatePaymentStatus").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	if err := e.Validate(payload); err != nil {
		return response.WriteValidationResponse(e, err)
	}

	payload.ID = e.Param("id")
	order, err := c.service.UpdatePaymentStatus(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, http.StatusOK, order)
}

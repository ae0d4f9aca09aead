package app

import (
	"fmt"
	"net/http"

	"github.com/dmitryhil/vineweb/config"
	"github.com/dmitryhil/vineweb/internal/controller"
	appmiddleware "github.com/dmitryhil/vineweb/internal/middleware"
	"github.com/dmitryhil/vineweb/internal/service"
	"github.com/dmitryhil/vineweb/pkg/response"
	"github.com/dmitryhil/vineweb/pkg/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
)

// maxImages is the number of files a product form may carry.
const maxImages = 5

type Services struct {
	Product  service.ProductService
	Order    service.OrderService
	User     service.UserService
	Cart     service.CartService
	Wishlist service.WishlistService
	Stats    service.StatsService
}

// NewRouter builds the /api surface. staticDir is served under the upload
// prefix when images live on local disk.
func NewRouter(cfg *config.Config, svcs Services, loginLimiter *appmiddleware.RateLimiter, staticDir string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = response.HTTPErrorHandler
	e.Validator = validator.NewCustomValidator()

	e.Use(middleware.Recover())
	e.Use(appmiddleware.Logger)

	corsConfig := middleware.DefaultCORSConfig
	if len(cfg.CORSOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORSOrigins
	}
	e.Use(middleware.CORSWithConfig(corsConfig))

	if staticDir != "" {
		e.Static(cfg.UploadConfig.URLPrefix, staticDir)
	}

	g := e.Group("/api")
	g.Use(middleware.BodyLimit(fmt.Sprintf("%d", cfg.UploadConfig.MaxFileBytes*(maxImages+1))))
	g.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogMethod:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Ctx(c.Request().Context()).Debug().
				Str("method", v.Method).
				Str("URI", v.URI).
				Int("status", v.Status).
				Int64("latency", v.Latency.Microseconds()).
				Str("remote IP", v.RemoteIP).
				Msg("Request")

			return nil
		},
	}))

	isLoggedIn := appmiddleware.IsLoggedIn(cfg.JWTSecret)
	isAdmin := appmiddleware.RequireAdmin

	controller.CreateProductController(g, svcs.Product, cfg.MaxPageLimit, isLoggedIn, isAdmin)
	controller.CreateOrderController(g, svcs.Order, isLoggedIn, isAdmin)
	controller.CreateAuthController(g, svcs.User, isLoggedIn, loginLimiter.Middleware)
	controller.CreateCartController(g, svcs.Cart, svcs.Wishlist, isLoggedIn)
	controller.CreateAdminController(g, svcs.Stats, isLoggedIn, isAdmin)

	g.GET("/ping", func(c echo.Context) error {
		return c.JSON(http.StatusOK, response.MessageResponse{Message: "pong"})
	})

	return e
}

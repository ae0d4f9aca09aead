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

type CartController struct {
	cartService     service.CartService
	wishlistService service.WishlistService
}

func CreateCartController(g *echo.Group, cartService service.CartService, wishlistService service.WishlistService, isLoggedIn echo.MiddlewareFunc) {
	c := CartController{
		cartService:     cartService,
		wishlistService: wishlistService,
	}

	cart := g.Group("/cart", isLoggedIn)
	cart.GET("", c.GetCart)
	cart.POST("", c.AddCartItem)
	cart.PUT("/:itemId", c.UpdateCartItem)
	cart.DELETE("/:itemId", c.RemoveCartItem)
	cart.DELETE("", c.ClearCart)

	wishlist := g.Group("/wishlist", isLoggedIn)
	wishlist.GET("", c.GetWishlist)
	wishlist.POST("", c.AddWishlistProduct)
	wishlist.DELETE("/:productId", c.RemoveWishlistProduct)
}

func currentUserID(e echo.Context) (string, error) {
	user, err := utils.ExtractTokenUser(e)
	if err != nil {
		return "", errs.ErrInvalidToken
	}
	return user.ID, nil
}

func (c *CartController) GetCart(e echo.Context) error {
	userID, err := currentUserID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	res, err := c.cartService.GetCart(e.Request().Context(), userID)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, http.StatusOK, res)
}

func (c *CartController) AddCartItem(e echo.Context) error {
	userID, err := currentUserID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	payload := dto.CartItemRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "AddCartItem").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	if err := e.Validate(payload); err != nil {
		return response.WriteValidationResponse(e, err)
	}

	res, err := c.cartService.AddItem(e.Request().Context(), userID, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, http.StatusOK, res)
}

func (c *CartController) UpdateCartItem(e echo.Context) error {
	userID, err := currentUserID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	payload := dto.CartQuantityRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "UpdateCartItem").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	if err := e.Validate(payload); err != nil {
		return response.WriteValidationResponse(e, err)
	}

	payload.ItemID = e.Param("itemId")
	res, err := c.cartService.UpdateItem(e.Request().Context(), userID, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, http.StatusOK, res)
}

func (c *CartController) RemoveCartItem(e echo.Context) error {
	userID, err := currentUserID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	res, err := c.cartService.RemoveItem(e.Request().Context(), userID, e.Param("itemId"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, http.StatusOK, res)
}

func (c *CartController) ClearCart(e echo.Context) error {
	userID, err := currentUserID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	if err := c.cartService.ClearCart(e.Request().Context(), userID); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteMessageResponse(e, "Cart cleared")
}

func (c *CartController) GetWishlist(e echo.Context) error {
	userID, err := currentUserID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	res, err := c.wishlistService.GetWishlist(e.Request().Context(), userID)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, http.StatusOK, res)
}

func (c *CartController) AddWishlistProduct(e echo.Context) error {
	userID, err := currentUserID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	payload := dto.WishlistRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "AddWishlistProduct").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	if err := e.Validate(payload); err != nil {
		return response.WriteValidationResponse(e, err)
	}

	res, err := c.wishlistService.AddProduct(e.Request().Context(), userID, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, http.StatusOK, res)
}

func (c *CartController) RemoveWishlistProduct(e echo.Context) error {
	userID, err := currentUserID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	res, err := c.wishlistService.RemoveProduct(e.Request().Context(), userID, e.Param("productId"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, http.StatusOK, res)
}

package controller

import (
	"net/http"

	"github.com/dmitryhil/vineweb/internal/catalog"
	"github.com/dmitryhil/vineweb/internal/dto"
	"github.com/dmitryhil/vineweb/internal/service"
	"github.com/dmitryhil/vineweb/pkg/errs"
	"github.com/dmitryhil/vineweb/pkg/response"
	"github.com/labstack/echo/v4"
)

type ProductController struct {
	service      service.ProductService
	maxPageLimit int
}

func CreateProductController(g *echo.Group, service service.ProductService, maxPageLimit int, isLoggedIn echo.MiddlewareFunc, isAdmin echo.MiddlewareFunc) {
	c := ProductController{
		service:      service,
		maxPageLimit: maxPageLimit,
	}
	g.GET("/products", c.GetProducts)
	g.GET("/products/:id", c.GetProduct)
	g.POST("/products", c.AddProduct, isLoggedIn, isAdmin)
	g.PUT("/products/:id", c.UpdateProduct, isLoggedIn, isAdmin)
	g.DELETE("/products/:id", c.DeleteProduct, isLoggedIn, isAdmin)
	g.POST("/upload", c.UploadImage, isLoggedIn, isAdmin)
}

func (c *ProductController) GetProducts(e echo.Context) error {
	query := catalog.ParseQuery(e.QueryParams(), c.maxPageLimit)

	res, err := c.service.GetProducts(e.Request().Context(), query)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, http.StatusOK, res)
}

func (c *ProductController) GetProduct(e echo.Context) error {
	product, err := c.service.GetProductByID(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, http.StatusOK, product)
}

func (c *ProductController) AddProduct(e echo.Context) error {
	payload, err := c.bindProduct(e, "")
	if err != nil {
		return response.WriteValidationResponse(e, err)
	}

	product, err := c.service.AddProduct(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, http.StatusCreated, product)
}

func (c *ProductController) UpdateProduct(e echo.Context) error {
	payload, err := c.bindProduct(e, e.Param("id"))
	if err != nil {
		return response.WriteValidationResponse(e, err)
	}

	product, err := c.service.UpdateProduct(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, http.StatusOK, product)
}

func (c *ProductController) DeleteProduct(e echo.Context) error {
	product, err := c.service.DeleteProduct(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, http.StatusOK, dto.DeleteProductResponse{
		Message:        "Product deleted",
		DeletedProduct: product,
	})
}

func (c *ProductController) UploadImage(e echo.Context) error {
	fh, err := e.FormFile("image")
	if err != nil {
		if isTooLarge(err) {
			return response.WriteErrorResponse(e, errs.ErrFileTooLarge, nil)
		}
		return response.WriteErrorResponse(e, errs.ErrNoFileUploaded, nil)
	}

	res, err := c.service.UploadImage(e.Request().Context(), fh)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, http.StatusOK, res)
}

func (c *ProductController) bindProduct(e echo.Context, id string) (dto.ProductRequest, error) {
	form, err := readProductForm(e)
	if err != nil {
		return dto.ProductRequest{}, err
	}

	payload, err := form.request(id)
	if err != nil {
		return dto.ProductRequest{}, err
	}

	if err := e.Validate(payload); err != nil {
		return dto.ProductRequest{}, err
	}

	return payload, nil
}

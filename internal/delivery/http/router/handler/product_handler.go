package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	deliverycontext "github.com/jonathanpoaquiza/market-jals/internal/delivery/context"
	"github.com/jonathanpoaquiza/market-jals/internal/delivery/http/response"
	"github.com/jonathanpoaquiza/market-jals/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProductHandler holds dependencies for catalog handlers.
type ProductHandler struct {
	uc     usecase.CatalogUsecase
	logger *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(uc usecase.CatalogUsecase, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, logger: logger}
}

// CreateProduct adds a catalog entry.
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var input usecase.CreateProductInput
	if err := c.Bind(&input); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Cuerpo de la solicitud no válido")
	}

	product, err := h.uc.CreateProduct(c.Request().Context(), deliverycontext.GetProfile(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, product, "Producto creado")
}

// GetProduct returns a single catalog entry.
func (h *ProductHandler) GetProduct(c echo.Context) error {
	product, err := h.uc.GetProduct(c.Request().Context(), deliverycontext.GetProfile(c), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "")
}

// ListProducts returns catalog entries visible to the caller.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	input := usecase.ListProductsInput{
		Category:           c.QueryParam("category"),
		SellerID:           c.QueryParam("sellerId"),
		StartAfter:         c.QueryParam("startAfter"),
		IncludeUnavailable: c.QueryParam("includeUnavailable") == "true",
	}

	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return response.BadRequest(c, "INVALID_INPUT", "El parámetro limit debe ser numérico")
		}
		input.Limit = limit
	}

	products, err := h.uc.ListProducts(c.Request().Context(), deliverycontext.GetProfile(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products, "")
}

// UpdateProduct applies partial changes to a catalog entry.
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	var input usecase.UpdateProductInput
	if err := c.Bind(&input); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Cuerpo de la solicitud no válido")
	}

	product, err := h.uc.UpdateProduct(c.Request().Context(), deliverycontext.GetProfile(c), c.Param("id"), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Producto actualizado")
}

// DeleteProduct removes a catalog entry.
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	if err := h.uc.DeleteProduct(c.Request().Context(), deliverycontext.GetProfile(c), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Producto eliminado")
}

// UploadImage stores a product image from a multipart form and returns
// its public URL.
func (h *ProductHandler) UploadImage(c echo.Context) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Se requiere un archivo de imagen")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "open uploaded file")
	}
	defer file.Close()

	url, err := h.uc.UploadImage(c.Request().Context(), deliverycontext.GetProfile(c), usecase.UploadImageInput{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     file,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]string{"imageUrl": url}, "Imagen subida")
}

package handler

import (
	"encoding/base64"
	"log/slog"
	"net/http"

	deliverycontext "github.com/jonathanpoaquiza/market-jals/internal/delivery/context"
	"github.com/jonathanpoaquiza/market-jals/internal/delivery/http/response"
	"github.com/jonathanpoaquiza/market-jals/internal/domain/service"
	"github.com/jonathanpoaquiza/market-jals/internal/infra/metrics"
	"github.com/jonathanpoaquiza/market-jals/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CartHandler holds dependencies for cart and invoicing handlers.
type CartHandler struct {
	uc      usecase.CartUsecase
	qr      service.QRCodeService
	metrics *metrics.HTTPMetrics
	logger  *slog.Logger
}

// NewCartHandler is the constructor for CartHandler, injected by Fx.
func NewCartHandler(uc usecase.CartUsecase, qr service.QRCodeService, m *metrics.HTTPMetrics, logger *slog.Logger) *CartHandler {
	return &CartHandler{uc: uc, qr: qr, metrics: m, logger: logger}
}

// GetCart returns the caller's cart.
func (h *CartHandler) GetCart(c echo.Context) error {
	cart, err := h.uc.GetCart(c.Request().Context(), deliverycontext.GetProfile(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart, "")
}

// AddToCart adds a product to the caller's cart.
func (h *CartHandler) AddToCart(c echo.Context) error {
	var input usecase.AddToCartInput
	if err := c.Bind(&input); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Cuerpo de la solicitud no válido")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	cart, err := h.uc.AddToCart(c.Request().Context(), deliverycontext.GetProfile(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart, "Producto agregado al carrito")
}

// UpdateCartItem replaces a line's quantity. Quantity zero removes the
// line.
func (h *CartHandler) UpdateCartItem(c echo.Context) error {
	var input usecase.UpdateCartItemInput
	if err := c.Bind(&input); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Cuerpo de la solicitud no válido")
	}
	input.ProductID = c.Param("productId")
	if err := c.Validate(&input); err != nil {
		return err
	}

	cart, err := h.uc.UpdateCartItem(c.Request().Context(), deliverycontext.GetProfile(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart, "Carrito actualizado")
}

// RemoveCartItem drops a line from the cart.
func (h *CartHandler) RemoveCartItem(c echo.Context) error {
	input := usecase.UpdateCartItemInput{ProductID: c.Param("productId")}

	cart, err := h.uc.UpdateCartItem(c.Request().Context(), deliverycontext.GetProfile(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart, "Producto eliminado del carrito")
}

// ClearCart empties the caller's cart.
func (h *CartHandler) ClearCart(c echo.Context) error {
	if err := h.uc.ClearCart(c.Request().Context(), deliverycontext.GetProfile(c)); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Carrito vaciado")
}

type checkoutResponse struct {
	Invoice any    `json:"invoice"`
	QRCode  string `json:"qrCode,omitempty"`
}

// Checkout issues an invoice from the caller's cart. The QR code comes
// back base64 encoded alongside the invoice.
func (h *CartHandler) Checkout(c echo.Context) error {
	out, err := h.uc.Checkout(c.Request().Context(), deliverycontext.GetProfile(c))
	if err != nil {
		return errors.WithStack(err)
	}

	h.metrics.RecordInvoiceIssued()

	body := checkoutResponse{Invoice: out.Invoice}
	if len(out.QRCode) > 0 {
		body.QRCode = base64.StdEncoding.EncodeToString(out.QRCode)
	}

	return response.Success(c, http.StatusCreated, body, "Factura emitida")
}

// GetInvoice returns an issued invoice.
func (h *CartHandler) GetInvoice(c echo.Context) error {
	invoice, err := h.uc.GetInvoice(c.Request().Context(), deliverycontext.GetProfile(c), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, invoice, "")
}

// ListInvoices returns a customer's invoices, newest first. Admins may
// pass customerId to inspect another buyer.
func (h *CartHandler) ListInvoices(c echo.Context) error {
	invoices, err := h.uc.ListInvoices(c.Request().Context(), deliverycontext.GetProfile(c), c.QueryParam("customerId"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, invoices, "")
}

// GetInvoiceQR renders the invoice QR code as a PNG. The ownership
// check runs through the same path as GetInvoice.
func (h *CartHandler) GetInvoiceQR(c echo.Context) error {
	invoice, err := h.uc.GetInvoice(c.Request().Context(), deliverycontext.GetProfile(c), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	png, err := h.qr.GenerateInvoiceQR(invoice.Number)
	if err != nil {
		return errors.Wrap(err, "generate invoice qr")
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

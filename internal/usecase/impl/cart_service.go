package impl

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonathanpoaquiza/market-jals/internal/domain/entity"
	domainerrors "github.com/jonathanpoaquiza/market-jals/internal/domain/errors"
	"github.com/jonathanpoaquiza/market-jals/internal/domain/repository"
	"github.com/jonathanpoaquiza/market-jals/internal/domain/service"
	"github.com/jonathanpoaquiza/market-jals/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// cartService implements the CartUsecase interface. Carts live in
// process memory keyed by owner; an issued invoice is the only durable
// trace of a cart.
type cartService struct {
	mu    sync.Mutex
	carts map[string]*entity.Cart

	productRepo repository.ProductRepository
	invoiceRepo repository.InvoiceRepository
	qrService   service.QRCodeService
	logger      *slog.Logger
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
	InvoiceRepo repository.InvoiceRepository
	QRService   service.QRCodeService
	Logger      *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		carts:       make(map[string]*entity.Cart),
		productRepo: params.ProductRepo,
		invoiceRepo: params.InvoiceRepo,
		qrService:   params.QRService,
		logger:      params.Logger,
	}
}

// GetCart returns the actor's cart, creating an empty one on first
// access.
func (srv *cartService) GetCart(_ context.Context, actor *entity.UserProfile) (*entity.Cart, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	return srv.cartLocked(actor.UID), nil
}

// AddToCart snapshots the product into the actor's cart.
func (srv *cartService) AddToCart(ctx context.Context, actor *entity.UserProfile, input usecase.AddToCartInput) (*entity.Cart, error) {
	product, err := srv.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProductNotFound, "cart addition")
		}

		return nil, errors.Wrap(err, "failed to load product")
	}

	if !product.Available {
		return nil, errors.Wrap(domainerrors.ErrProductNotFound, "product hidden")
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	cart := srv.cartLocked(actor.UID)
	cart.Add(entity.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		ImageURL:  product.ImageURL,
		Quantity:  input.Quantity,
	})

	return cart, nil
}

// UpdateCartItem changes a line's quantity, removing it at zero.
func (srv *cartService) UpdateCartItem(_ context.Context, actor *entity.UserProfile, input usecase.UpdateCartItemInput) (*entity.Cart, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	cart := srv.cartLocked(actor.UID)
	if !cart.SetQuantity(input.ProductID, input.Quantity) {
		return nil, errors.Wrap(domainerrors.ErrProductNotFound, "not in cart")
	}

	return cart, nil
}

// ClearCart empties the actor's cart.
func (srv *cartService) ClearCart(_ context.Context, actor *entity.UserProfile) error {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	srv.cartLocked(actor.UID).Clear()

	return nil
}

// Checkout issues an invoice from the cart. The invoiced quantities are
// deducted only after the invoice is stored, so a persistence failure
// leaves the cart intact for a retry.
func (srv *cartService) Checkout(ctx context.Context, actor *entity.UserProfile) (*usecase.CheckoutOutput, error) {
	srv.mu.Lock()
	cart := srv.cartLocked(actor.UID)
	if cart.IsEmpty() {
		srv.mu.Unlock()

		return nil, errors.Wrap(domainerrors.ErrCartEmpty, "checkout")
	}
	lines := make([]entity.InvoiceLine, 0, len(cart.Items))
	for _, item := range cart.Items {
		lines = append(lines, entity.InvoiceLine{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: decimal.NewFromFloat(item.Price),
			Quantity:  item.Quantity,
		})
	}
	srv.mu.Unlock()

	invoice := &entity.Invoice{
		ID:            uuid.NewString(),
		CustomerID:    actor.UID,
		CustomerName:  actor.DisplayName,
		CustomerEmail: actor.Email,
		Lines:         lines,
		IssuedAt:      time.Now().UTC(),
	}
	invoice.Number = invoiceNumber(invoice.IssuedAt, invoice.ID)
	invoice.ComputeTotals()

	if err := srv.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, errors.Wrap(err, "failed to store invoice")
	}

	// Deduct only the invoiced quantities. Items added while the
	// invoice was being stored stay in the cart.
	srv.mu.Lock()
	cart = srv.cartLocked(actor.UID)
	for _, line := range lines {
		cart.Deduct(line.ProductID, line.Quantity)
	}
	srv.mu.Unlock()

	srv.logger.Info("Invoice issued",
		"invoiceID", invoice.ID, "number", invoice.Number,
		"customer", actor.UID, "total", invoice.Total.String())

	qr, err := srv.qrService.GenerateInvoiceQR(invoice.Number)
	if err != nil {
		// The invoice is already issued; the QR can be regenerated on
		// a later fetch.
		srv.logger.Warn("Failed to generate invoice QR",
			"invoiceID", invoice.ID, "error", err)
		qr = nil
	}

	return &usecase.CheckoutOutput{Invoice: invoice, QRCode: qr}, nil
}

// GetInvoice returns an issued invoice under ownership rules.
func (srv *cartService) GetInvoice(ctx context.Context, actor *entity.UserProfile, id string) (*entity.Invoice, error) {
	invoice, err := srv.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrInvoiceNotFound) {
			return nil, errors.Wrap(domainerrors.ErrInvoiceNotFound, "invoice lookup")
		}

		return nil, errors.Wrap(err, "failed to load invoice")
	}

	if invoice.CustomerID != actor.UID && !actor.IsAdmin() {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "not the invoice owner")
	}

	return invoice, nil
}

// ListInvoices returns invoices, newest first. An empty customerID
// means the actor's own; another customer's invoices require admin.
func (srv *cartService) ListInvoices(ctx context.Context, actor *entity.UserProfile, customerID string) ([]*entity.Invoice, error) {
	if customerID == "" {
		customerID = actor.UID
	}
	if customerID != actor.UID && !actor.IsAdmin() {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "listing another customer's invoices requires admin")
	}

	invoices, err := srv.invoiceRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list invoices")
	}

	return invoices, nil
}

// cartLocked returns the owner's cart. Callers must hold mu.
func (srv *cartService) cartLocked(ownerID string) *entity.Cart {
	cart, ok := srv.carts[ownerID]
	if !ok {
		cart = entity.NewCart(ownerID)
		srv.carts[ownerID] = cart
	}

	return cart
}

// invoiceNumber derives a human-readable invoice number from the issue
// time and the invoice ID.
func invoiceNumber(issuedAt time.Time, id string) string {
	return fmt.Sprintf("INV-%s-%s", issuedAt.Format("20060102"), id[:8])
}

package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jonathanpoaquiza/market-jals/internal/domain/constants"
	"github.com/jonathanpoaquiza/market-jals/internal/domain/entity"
	domainerrors "github.com/jonathanpoaquiza/market-jals/internal/domain/errors"
	"github.com/jonathanpoaquiza/market-jals/internal/domain/repository"
	"github.com/jonathanpoaquiza/market-jals/internal/domain/service"
	"github.com/jonathanpoaquiza/market-jals/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	productRepo repository.ProductRepository
	storage     service.ImageStorage
	logger      *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
	Storage     service.ImageStorage
	Logger      *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		productRepo: params.ProductRepo,
		storage:     params.Storage,
		logger:      params.Logger,
	}
}

// CreateProduct adds a new catalog entry owned by the actor.
func (srv *catalogService) CreateProduct(ctx context.Context, actor *entity.UserProfile, input usecase.CreateProductInput) (*entity.Product, error) {
	if !actor.HasMinimumRole(entity.RoleEmployee) {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "creating products requires employee")
	}

	if err := validateProductFields(input.Name, input.Price, input.Stock); err != nil {
		return nil, err
	}

	available := true
	if input.Available != nil {
		available = *input.Available
	}

	now := time.Now().UTC()
	product := &entity.Product{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Category:    input.Category,
		ImageURL:    input.ImageURL,
		Available:   available,
		SellerID:    actor.UID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := srv.productRepo.Create(ctx, product)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.logger.Info("Product created", "productID", created.ID, "seller", actor.UID)

	return created, nil
}

// GetProduct returns a single catalog entry, applying availability
// visibility rules.
func (srv *catalogService) GetProduct(ctx context.Context, actor *entity.UserProfile, id string) (*entity.Product, error) {
	product, err := srv.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	// A hidden product is indistinguishable from a missing one for
	// anyone who cannot manage it.
	if !product.Available && !srv.canManage(actor, product) {
		return nil, errors.Wrap(domainerrors.ErrProductNotFound, "product hidden")
	}

	return product, nil
}

// ListProducts returns the catalog entries visible to the actor.
func (srv *catalogService) ListProducts(ctx context.Context, actor *entity.UserProfile, input usecase.ListProductsInput) ([]*entity.Product, error) {
	limit := input.Limit
	if limit <= 0 || limit > constants.DefaultCatalogPageSize {
		limit = constants.DefaultCatalogPageSize
	}

	filter := entity.ProductFilter{
		Category:   input.Category,
		SellerID:   input.SellerID,
		Limit:      limit,
		StartAfter: input.StartAfter,
	}

	if input.IncludeUnavailable {
		if !actor.IsAdmin() {
			return nil, errors.Wrap(domainerrors.ErrForbidden, "listing hidden products requires admin")
		}
		filter.IncludeUnavailable = true
	}

	products, err := srv.productRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

// UpdateProduct applies partial changes to an existing entry.
func (srv *catalogService) UpdateProduct(ctx context.Context, actor *entity.UserProfile, id string, input usecase.UpdateProductInput) (*entity.Product, error) {
	product, err := srv.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if !srv.canManage(actor, product) {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "not the product owner")
	}

	changes := map[string]any{}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, errors.Wrap(domainerrors.ErrProductNameEmpty, "update")
		}
		changes["name"] = strings.TrimSpace(*input.Name)
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		changes["description"] = *input.Description
		product.Description = *input.Description
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			return nil, errors.Wrap(domainerrors.ErrProductPriceInvalid, "update")
		}
		changes["price"] = *input.Price
		product.Price = *input.Price
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, errors.Wrap(domainerrors.ErrProductStockInvalid, "update")
		}
		changes["stock"] = *input.Stock
		product.Stock = *input.Stock
	}
	if input.Category != nil {
		changes["category"] = *input.Category
		product.Category = *input.Category
	}
	if input.ImageURL != nil {
		changes["imageUrl"] = *input.ImageURL
		product.ImageURL = *input.ImageURL
	}
	if input.Available != nil {
		changes["available"] = *input.Available
		product.Available = *input.Available
	}

	if len(changes) == 0 {
		return product, nil
	}

	now := time.Now().UTC()
	changes["updatedAt"] = now
	product.UpdatedAt = now

	if err := srv.productRepo.Update(ctx, id, changes); err != nil {
		return nil, errors.Wrap(err, "failed to update product")
	}

	return product, nil
}

// DeleteProduct removes a catalog entry.
func (srv *catalogService) DeleteProduct(ctx context.Context, actor *entity.UserProfile, id string) error {
	product, err := srv.findProduct(ctx, id)
	if err != nil {
		return err
	}

	if !srv.canManage(actor, product) {
		return errors.Wrap(domainerrors.ErrForbidden, "not the product owner")
	}

	if err := srv.productRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete product")
	}

	if product.ImageURL != "" {
		// Image cleanup is best effort, a dangling blob is harmless.
		if err := srv.storage.Delete(ctx, product.ImageURL); err != nil {
			srv.logger.Warn("Failed to delete product image",
				"productID", id, "error", err)
		}
	}

	srv.logger.Info("Product deleted", "productID", id, "actor", actor.UID)

	return nil
}

// UploadImage stores a product image and returns its public URL.
func (srv *catalogService) UploadImage(ctx context.Context, actor *entity.UserProfile, input usecase.UploadImageInput) (string, error) {
	if !actor.HasMinimumRole(entity.RoleEmployee) {
		return "", errors.Wrap(domainerrors.ErrForbidden, "uploading images requires employee")
	}

	url, err := srv.storage.Upload(ctx, input.Filename, input.ContentType, input.Content)
	if err != nil {
		return "", errors.Wrap(err, "failed to upload image")
	}

	return url, nil
}

func (srv *catalogService) findProduct(ctx context.Context, id string) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProductNotFound, "product lookup")
		}

		return nil, errors.Wrap(err, "failed to load product")
	}

	return product, nil
}

// canManage reports whether the actor may edit or delete the product.
// The seller keeps control of existing entries even after a demotion.
func (srv *catalogService) canManage(actor *entity.UserProfile, product *entity.Product) bool {
	if actor.IsAdmin() {
		return true
	}

	return actor != nil && product.SellerID == actor.UID
}

func validateProductFields(name string, price float64, stock int) error {
	if strings.TrimSpace(name) == "" {
		return errors.Wrap(domainerrors.ErrProductNameEmpty, "create")
	}
	if price <= 0 {
		return errors.Wrap(domainerrors.ErrProductPriceInvalid, "create")
	}
	if stock < 0 {
		return errors.Wrap(domainerrors.ErrProductStockInvalid, "create")
	}

	return nil
}

package firestore

import (
	"context"

	"github.com/jonathanpoaquiza/market-jals/internal/domain/constants"
	"github.com/jonathanpoaquiza/market-jals/internal/domain/entity"
	"github.com/jonathanpoaquiza/market-jals/internal/domain/repository"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type productRepository struct {
	client *firestore.Client
}

// NewProductRepository creates a ProductRepository backed by the document store.
func NewProductRepository(client *firestore.Client) repository.ProductRepository {
	return &productRepository{client: client}
}

func (r *productRepository) products() *firestore.CollectionRef {
	return r.client.Collection(constants.CollectionProducts)
}

// Create stores a new product under a generated document ID.
func (r *productRepository) Create(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	ref, _, err := r.products().Add(ctx, product)
	if err != nil {
		return nil, errors.Wrap(err, "add product document")
	}

	created := *product
	created.ID = ref.ID

	return &created, nil
}

// FindByID returns the product stored under the given document ID.
func (r *productRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	doc, err := r.products().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "get product document")
	}

	return decodeProduct(doc)
}

// List returns products matching the filter, newest first. The cursor
// is the document ID of the last product of the previous page.
func (r *productRepository) List(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error) {
	query := r.products().Query
	if filter.Category != "" {
		query = query.Where("category", "==", filter.Category)
	}
	if filter.SellerID != "" {
		query = query.Where("sellerId", "==", filter.SellerID)
	}
	if !filter.IncludeUnavailable {
		query = query.Where("available", "==", true)
	}
	query = query.OrderBy("createdAt", firestore.Desc)

	if filter.StartAfter != "" {
		cursor, err := r.products().Doc(filter.StartAfter).Get(ctx)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				// A vanished cursor means the page it anchored is gone.
				return []*entity.Product{}, nil
			}

			return nil, errors.Wrap(err, "get cursor document")
		}
		query = query.StartAfter(cursor)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var products []*entity.Product
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "iterate product documents")
		}

		product, err := decodeProduct(doc)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, nil
}

// Update applies the given field changes to an existing product.
func (r *productRepository) Update(ctx context.Context, id string, changes map[string]any) error {
	updates := make([]firestore.Update, 0, len(changes))
	for field, value := range changes {
		updates = append(updates, firestore.Update{Path: field, Value: value})
	}

	if _, err := r.products().Doc(id).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return repository.ErrProductNotFound
		}

		return errors.Wrap(err, "update product document")
	}

	return nil
}

// Delete removes a product from the catalog.
func (r *productRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.products().Doc(id).Delete(ctx); err != nil {
		return errors.Wrap(err, "delete product document")
	}

	return nil
}

func decodeProduct(doc *firestore.DocumentSnapshot) (*entity.Product, error) {
	var product entity.Product
	if err := doc.DataTo(&product); err != nil {
		return nil, errors.Wrap(err, "decode product document")
	}
	product.ID = doc.Ref.ID

	return &product, nil
}

package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/catalog"
	"github.com/retail/backend/internal/domain/inventory"
	"github.com/retail/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo catalog.ProductRepository
	stockRepo   inventory.StockRepository
	tx          shared.Transactor
	clock       shared.Clock
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	stockRepo inventory.StockRepository,
	tx shared.Transactor,
	clock shared.Clock,
	logger *zap.Logger,
) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		productRepo: productRepo,
		stockRepo:   stockRepo,
		tx:          tx,
		clock:       clock,
		logger:      logger.Named("catalog"),
	}
}

// List returns every product
func (s *ProductService) List(ctx context.Context) ([]ProductResponse, error) {
	return s.list(s.productRepo.FindAll(ctx))
}

// ListActive returns products that are not deactivated
func (s *ProductService) ListActive(ctx context.Context) ([]ProductResponse, error) {
	return s.list(s.productRepo.FindActive(ctx))
}

// ListAvailable returns active products with stock on hand
func (s *ProductService) ListAvailable(ctx context.Context) ([]ProductResponse, error) {
	return s.list(s.productRepo.FindAvailable(ctx))
}

// ListByCategory returns products in category
func (s *ProductService) ListByCategory(ctx context.Context, category string) ([]ProductResponse, error) {
	return s.list(s.productRepo.FindByCategory(ctx, strings.TrimSpace(category)))
}

// Search finds products whose name contains term, ignoring case
func (s *ProductService) Search(ctx context.Context, term string) ([]ProductResponse, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, shared.ErrInvalidInput.WithMessage("Search term is required")
	}
	return s.list(s.productRepo.Search(ctx, term))
}

func (s *ProductService) list(products []catalog.Product, err error) ([]ProductResponse, error) {
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(p)
	return &resp, nil
}

// Create adds a product and opens its stock row with the initial quantity.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	now := s.clock.Now()
	product, err := catalog.NewProduct(req.Name, req.Category, req.Price, req.Stock, now)
	if err != nil {
		return nil, err
	}
	stock, err := inventory.NewStock(product.ID, req.Stock, now)
	if err != nil {
		return nil, err
	}

	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := s.productRepo.Save(ctx, product); err != nil {
			return err
		}
		return s.stockRepo.Save(ctx, stock)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("category", product.Category),
	)
	resp := ToProductResponse(product)
	return &resp, nil
}

// Update changes a product's name, category and price
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := product.Update(req.Name, req.Category, req.Price, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// UpdateStock sets the product's stock and its stock row together.
func (s *ProductService) UpdateStock(ctx context.Context, id uuid.UUID, quantity int) (*ProductResponse, error) {
	var product *catalog.Product
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		var err error
		product, err = s.productRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		now := s.clock.Now()
		if err := product.UpdateStock(quantity, now); err != nil {
			return err
		}

		stock, err := s.stockRepo.FindByProductID(ctx, id)
		if errors.Is(err, shared.ErrNotFound) {
			stock, err = inventory.NewStock(id, quantity, now)
		} else if err == nil {
			err = stock.SetQuantity(quantity, now)
		}
		if err != nil {
			return err
		}
		// the stock row mirrors the quantity onto products.stock
		return s.stockRepo.Save(ctx, stock)
	})
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// Deactivate hides a product from active listings
func (s *ProductService) Deactivate(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := product.Deactivate(s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// Delete removes a product. Its stock row is left behind and skipped by the
// stock report.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Product deleted", zap.String("product_id", id.String()))
	return nil
}

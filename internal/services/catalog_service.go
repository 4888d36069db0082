// internal/services/catalog_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/threadcart/threadcart-backend/internal/models"
	"github.com/threadcart/threadcart-backend/internal/utils"
)

// CatalogService owns the product -> color -> variant/asset hierarchy.
// The *gorm.DB handle is injected so tests can substitute their own.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

type AssetInput struct {
	URL  string           `json:"url" validate:"required,url"`
	Type models.AssetType `json:"type" validate:"required,oneof=IMAGE VIDEO"`
}

type SizeInput struct {
	Size  models.SizeValue `json:"size" validate:"required,oneof=XS S M L XL XXL"`
	Stock *int             `json:"stock" validate:"required,min=0"`
}

type CreateProductRequest struct {
	Name          string               `json:"name" validate:"required,min=1"`
	Description   string               `json:"description" validate:"required,min=1"`
	Price         float64              `json:"price" validate:"required,gt=0"`
	DiscountPrice *float64             `json:"discount_price,omitempty" validate:"omitempty,gt=0"`
	CategoryID    uuid.UUID            `json:"category_id" validate:"required"`
	Material      string               `json:"material" validate:"required,min=1"`
	Status        models.ProductStatus `json:"status" validate:"required,oneof=PUBLISHED DRAFT"`
	Assets        []AssetInput         `json:"assets,omitempty" validate:"omitempty,dive"`
	Tags          []string             `json:"tags,omitempty"`
}

type AddColorRequest struct {
	ProductID uuid.UUID    `json:"product_id" validate:"required"`
	Color     string       `json:"color" validate:"required,min=1"`
	Assets    []AssetInput `json:"assets" validate:"dive"`
	Sizes     []SizeInput  `json:"sizes" validate:"dive"`
}

type AddSizesRequest struct {
	ColorID uuid.UUID   `json:"color_id" validate:"required"`
	Sizes   []SizeInput `json:"sizes" validate:"required,min=1,dive"`
}

type UpdateColorRequest struct {
	Name   string       `json:"name" validate:"required,min=1"`
	Assets []AssetInput `json:"assets" validate:"dive"`
}

type UpdateStockRequest struct {
	VariantID uuid.UUID `json:"variant_id" validate:"required"`
	Stock     *int      `json:"stock" validate:"required,min=0"`
}

type OverviewStats struct {
	TotalProducts int64   `json:"total_products"`
	Revenue       float64 `json:"revenue"`
	Growth        string  `json:"growth"`
	UsersCount    int64   `json:"users_count"`
}

func (s *CatalogService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.DiscountPrice != nil && *req.DiscountPrice > req.Price {
		return nil, errors.New("discount price must not exceed price")
	}

	// Product row plus nested asset rows in one insert
	product := &models.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		CategoryID:    req.CategoryID,
		Material:      req.Material,
		Status:        req.Status,
		Tags:          req.Tags,
		Assets:        buildAssets(req.Assets),
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

func (s *CatalogService) AddColor(req *AddColorRequest) (*models.Color, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// Parent product must exist
	var product models.Product
	if err := s.db.First(&product, "id = ?", req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	// Color row with nested asset and variant rows in one insert
	color := &models.Color{
		ProductID: req.ProductID,
		Name:      req.Color,
		Assets:    buildAssets(req.Assets),
		Variants:  buildVariants(req.Sizes),
	}

	if err := s.db.Create(color).Error; err != nil {
		return nil, fmt.Errorf("failed to create color: %w", err)
	}

	return color, nil
}

func (s *CatalogService) AddSizes(req *AddSizesRequest) ([]models.Variant, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// Parent color must exist
	var color models.Color
	if err := s.db.First(&color, "id = ?", req.ColorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("color not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	variants := make([]models.Variant, 0, len(req.Sizes))
	for _, size := range req.Sizes {
		variants = append(variants, models.Variant{
			ColorID: req.ColorID,
			Size:    size.Size,
			Stock:   *size.Stock,
		})
	}

	if err := s.db.Create(&variants).Error; err != nil {
		return nil, fmt.Errorf("failed to create variants: %w", err)
	}

	return variants, nil
}

// UpdateColor replaces the color's asset set and renames it inside one
// transaction. Partial asset deletion is never committed alone.
func (s *CatalogService) UpdateColor(id uuid.UUID, req *UpdateColorRequest) (*models.Color, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Replace, not merge: drop every asset scoped to this color first
		if err := tx.Where("color_id = ?", id).Delete(&models.Asset{}).Error; err != nil {
			return fmt.Errorf("failed to delete color assets: %w", err)
		}

		result := tx.Model(&models.Color{}).Where("id = ?", id).Update("name", req.Name)
		if result.Error != nil {
			return fmt.Errorf("failed to update color: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return errors.New("color not found")
		}

		if len(req.Assets) > 0 {
			assets := make([]models.Asset, 0, len(req.Assets))
			for _, asset := range req.Assets {
				colorID := id
				assets = append(assets, models.Asset{
					URL:     asset.URL,
					Type:    asset.Type,
					ColorID: &colorID,
				})
			}
			if err := tx.Create(&assets).Error; err != nil {
				return fmt.Errorf("failed to create color assets: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	var color models.Color
	if err := s.db.Preload("Assets").Preload("Variants").First(&color, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload color: %w", err)
	}

	return &color, nil
}

func (s *CatalogService) UpdateStock(req *UpdateStockRequest) (*models.Variant, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	result := s.db.Model(&models.Variant{}).Where("id = ?", req.VariantID).Update("stock", *req.Stock)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, errors.New("variant not found")
	}

	var variant models.Variant
	if err := s.db.First(&variant, "id = ?", req.VariantID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload variant: %w", err)
	}

	return &variant, nil
}

func (s *CatalogService) DeleteAsset(id uuid.UUID) error {
	var asset models.Asset
	if err := s.db.First(&asset, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("asset not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Delete(&asset).Error; err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	return nil
}

// GetProduct returns the full aggregate: top-level assets plus every color
// expanded with its assets and variants.
func (s *CatalogService) GetProduct(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := s.db.
		Preload("Assets").
		Preload("Colors.Assets").
		Preload("Colors.Variants").
		First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &product, nil
}

func (s *CatalogService) GetAllProducts(params utils.PaginationParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{})

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	if params.Status != "" {
		query = query.Where("status = ?", models.ProductStatus(params.Status))
	}

	// Count first, then fetch the page (two round-trips)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	var products []models.Product
	if err := utils.ApplyPagination(query, params).
		Preload("Assets").
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

func (s *CatalogService) UpdateProduct(id uuid.UUID, req *CreateProductRequest) (*models.Product, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.DiscountPrice != nil && *req.DiscountPrice > req.Price {
		return nil, errors.New("discount price must not exceed price")
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// New top-level assets replace the old set; color-scoped assets are
		// untouched
		if len(req.Assets) > 0 {
			if err := tx.Where("product_id = ?", id).Delete(&models.Asset{}).Error; err != nil {
				return fmt.Errorf("failed to delete product assets: %w", err)
			}
		}

		updates := map[string]interface{}{
			"name":        req.Name,
			"description": req.Description,
			"price":       req.Price,
			"category_id": req.CategoryID,
			"material":    req.Material,
			"status":      req.Status,
		}
		// Omitted discount and tags leave the stored values untouched
		if req.DiscountPrice != nil {
			updates["discount_price"] = *req.DiscountPrice
		}
		if req.Tags != nil {
			updates["tags"] = req.Tags
		}

		if err := tx.Model(&product).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}

		if len(req.Assets) > 0 {
			assets := make([]models.Asset, 0, len(req.Assets))
			for _, asset := range req.Assets {
				productID := id
				assets = append(assets, models.Asset{
					URL:       asset.URL,
					Type:      asset.Type,
					ProductID: &productID,
				})
			}
			if err := tx.Create(&assets).Error; err != nil {
				return fmt.Errorf("failed to create product assets: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Assets").First(&product, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload product: %w", err)
	}

	return &product, nil
}

func (s *CatalogService) UpdateStatus(id uuid.UUID, status models.ProductStatus) error {
	if status != models.ProductStatusPublished && status != models.ProductStatusDraft {
		return errors.New("invalid product status")
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("product not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Model(&product).Update("status", status).Error; err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	return nil
}

func (s *CatalogService) DeleteProduct(id uuid.UUID) error {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("product not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	// Colors, variants and assets go with it via FK cascade
	if err := s.db.Delete(&product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}

func (s *CatalogService) DeleteColor(id uuid.UUID) error {
	var color models.Color
	if err := s.db.First(&color, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("color not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Delete(&color).Error; err != nil {
		return fmt.Errorf("failed to delete color: %w", err)
	}

	return nil
}

func (s *CatalogService) DeleteVariant(id uuid.UUID) error {
	var variant models.Variant
	if err := s.db.First(&variant, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("variant not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Delete(&variant).Error; err != nil {
		return fmt.Errorf("failed to delete variant: %w", err)
	}

	return nil
}

// GetOverview issues its four reads concurrently; none depends on another.
func (s *CatalogService) GetOverview() (*OverviewStats, error) {
	var (
		totalProducts int64
		totalRevenue  float64
		last30Revenue float64
		totalUsers    int64
	)

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)

	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		return s.db.WithContext(ctx).Model(&models.Product{}).
			Where("status = ?", models.ProductStatusPublished).
			Count(&totalProducts).Error
	})

	g.Go(func() error {
		return s.db.WithContext(ctx).Model(&models.Order{}).
			Where("status = ?", models.OrderStatusCompleted).
			Select("COALESCE(SUM(total), 0)").
			Scan(&totalRevenue).Error
	})

	g.Go(func() error {
		return s.db.WithContext(ctx).Model(&models.Order{}).
			Where("status = ? AND created_at >= ?", models.OrderStatusCompleted, thirtyDaysAgo).
			Select("COALESCE(SUM(total), 0)").
			Scan(&last30Revenue).Error
	})

	g.Go(func() error {
		return s.db.WithContext(ctx).Model(&models.User{}).Count(&totalUsers).Error
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to fetch overview: %w", err)
	}

	return &OverviewStats{
		TotalProducts: totalProducts,
		Revenue:       totalRevenue,
		Growth:        FormatGrowth(last30Revenue, totalRevenue),
		UsersCount:    totalUsers,
	}, nil
}

// FormatGrowth returns the last-30-day share of all-time revenue as a
// percentage with one decimal, or "0%" when there is no all-time revenue.
func FormatGrowth(last30, allTime float64) string {
	if allTime <= 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", (last30/allTime)*100)
}

func buildAssets(inputs []AssetInput) []models.Asset {
	assets := make([]models.Asset, 0, len(inputs))
	for _, input := range inputs {
		assets = append(assets, models.Asset{
			URL:  input.URL,
			Type: input.Type,
		})
	}
	return assets
}

func buildVariants(inputs []SizeInput) []models.Variant {
	variants := make([]models.Variant, 0, len(inputs))
	for _, input := range inputs {
		variants = append(variants, models.Variant{
			Size:  input.Size,
			Stock: *input.Stock,
		})
	}
	return variants
}

// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/threadcart/threadcart-backend/internal/models"
	"github.com/threadcart/threadcart-backend/internal/utils"
)

type OrderService struct {
	db *gorm.DB
}

type OrderItemInput struct {
	VariantID uuid.UUID `json:"variant_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type CreateOrderRequest struct {
	Items           []OrderItemInput       `json:"items" validate:"required,min=1,dive"`
	ShippingAddress map[string]interface{} `json:"shipping_address" validate:"required"`
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// CreateOrder prices the requested variants, decrements their stock and
// opens a PENDING order, all inside one transaction.
func (s *OrderService) CreateOrder(userID uuid.UUID, req *CreateOrderRequest) (*models.Order, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var order *models.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var total float64
		items := make([]map[string]interface{}, 0, len(req.Items))

		for _, item := range req.Items {
			var variant models.Variant
			if err := tx.First(&variant, "id = ?", item.VariantID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errors.New("variant not found")
				}
				return fmt.Errorf("database error: %w", err)
			}

			if variant.Stock < item.Quantity {
				return errors.New("insufficient stock")
			}

			var color models.Color
			if err := tx.First(&color, "id = ?", variant.ColorID).Error; err != nil {
				return fmt.Errorf("database error: %w", err)
			}

			var product models.Product
			if err := tx.First(&product, "id = ?", color.ProductID).Error; err != nil {
				return fmt.Errorf("database error: %w", err)
			}

			unitPrice := product.Price
			if product.DiscountPrice != nil {
				unitPrice = *product.DiscountPrice
			}
			total += unitPrice * float64(item.Quantity)

			if err := tx.Model(&variant).UpdateColumn("stock",
				gorm.Expr("stock - ?", item.Quantity)).Error; err != nil {
				return fmt.Errorf("failed to update stock: %w", err)
			}

			items = append(items, map[string]interface{}{
				"variant_id": variant.ID.String(),
				"product":    product.Name,
				"color":      color.Name,
				"size":       variant.Size,
				"quantity":   item.Quantity,
				"unit_price": unitPrice,
			})
		}

		order = &models.Order{
			UserID:          userID,
			Total:           total,
			Status:          models.OrderStatusPending,
			ShippingAddress: models.JSONB(req.ShippingAddress),
			Items:           models.JSONB{"items": items},
		}

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (s *OrderService) GetUserOrders(userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return orders, nil
}

func (s *OrderService) GetOrder(id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("User").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("order not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &order, nil
}

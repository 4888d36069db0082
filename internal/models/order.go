// internal/models/order.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Order carries the revenue side of the overview aggregation and the handles
// for the payment and shipping collaborators.
type Order struct {
	BaseModel
	UserID          uuid.UUID   `json:"user_id" gorm:"type:uuid;not null;index"`
	Total           float64     `json:"total" gorm:"type:decimal(10,2);not null"`
	Status          OrderStatus `json:"status" gorm:"type:varchar(20);default:'PENDING';index"`
	PaymentIntentID string      `json:"payment_intent_id,omitempty" gorm:"size:255;index"`
	CarrierOrderID  string      `json:"carrier_order_id,omitempty" gorm:"size:100"`
	AWBCode         string      `json:"awb_code,omitempty" gorm:"size:100"`
	ShippingAddress JSONB       `json:"shipping_address" gorm:"type:jsonb"`
	Items           JSONB       `json:"items" gorm:"type:jsonb"`
	PaidAt          *time.Time  `json:"paid_at"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

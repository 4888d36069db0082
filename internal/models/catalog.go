// internal/models/catalog.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Product is the root of the catalog aggregate. Category existence is not
// verified on write; CategoryID is stored as given.
type Product struct {
	BaseModel
	Name          string         `json:"name" gorm:"size:255;not null"`
	Description   string         `json:"description" gorm:"type:text;not null"`
	Price         float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	DiscountPrice *float64       `json:"discount_price" gorm:"type:decimal(10,2)"`
	CategoryID    uuid.UUID      `json:"category_id" gorm:"type:uuid;not null;index"`
	Material      string         `json:"material" gorm:"size:255;not null"`
	Status        ProductStatus  `json:"status" gorm:"type:varchar(20);default:'DRAFT';index"`
	Tags          pq.StringArray `json:"tags" gorm:"type:text[]"`

	// Relationships
	Assets []Asset `json:"assets,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Colors []Color `json:"colors,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// Color groups the variants and media of one colorway of a product.
type Color struct {
	BaseModel
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	Name      string    `json:"name" gorm:"size:100;not null"`

	// Relationships
	Assets   []Asset   `json:"assets,omitempty" gorm:"foreignKey:ColorID;constraint:OnDelete:CASCADE"`
	Variants []Variant `json:"variants,omitempty" gorm:"foreignKey:ColorID;constraint:OnDelete:CASCADE"`
}

func (Color) TableName() string {
	return "product_colors"
}

// Variant is a (size, stock) pair scoped to a color.
type Variant struct {
	BaseModel
	ColorID uuid.UUID `json:"color_id" gorm:"type:uuid;not null;index"`
	Size    SizeValue `json:"size" gorm:"type:varchar(10);not null"`
	Stock   int       `json:"stock" gorm:"not null;default:0;check:stock >= 0"`
}

func (Variant) TableName() string {
	return "product_variants"
}

// Asset is a media file attached to either a product directly or to one of
// its colors. Exactly one of ProductID/ColorID is set; parentage never
// changes after creation.
type Asset struct {
	BaseModel
	URL       string     `json:"url" gorm:"type:text;not null"`
	Type      AssetType  `json:"type" gorm:"type:varchar(10);not null"`
	ProductID *uuid.UUID `json:"product_id,omitempty" gorm:"type:uuid;index"`
	ColorID   *uuid.UUID `json:"color_id,omitempty" gorm:"type:uuid;index"`
}

func (Asset) TableName() string {
	return "product_assets"
}

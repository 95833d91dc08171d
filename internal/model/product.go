package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	Code          string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"code" validate:"required"`
	Name          string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description   string          `gorm:"type:text" json:"description"`
	CategoryID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"category_id" validate:"uuid_required"`
	Category      *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"purchase_price"`
	SalePrice     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"sale_price"`
	Stock         int             `gorm:"not null;default:0;check:stock >= 0" json:"stock"`
	MinStock      int             `gorm:"not null;default:5" json:"min_stock"`
	Active        bool            `gorm:"default:true" json:"active"`
}

// LowStock reports whether on-hand quantity fell to the reorder threshold
func (p *Product) LowStock() bool {
	return p.Stock <= p.MinStock
}

type ProductRequest struct {
	Code          string          `json:"code" validate:"required,min=2,max=50"`
	Name          string          `json:"name" validate:"required,min=2,max=255"`
	Description   string          `json:"description" validate:"max=500"`
	CategoryID    uuid.UUID       `json:"category_id" validate:"uuid_required"`
	PurchasePrice decimal.Decimal `json:"purchase_price" validate:"-"`
	SalePrice     decimal.Decimal `json:"sale_price" validate:"-"`
	Stock         int             `json:"stock" validate:"gte=0"`
	MinStock      int             `json:"min_stock" validate:"gte=0"`
}

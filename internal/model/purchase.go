package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase is a stock receipt from a supplier
type Purchase struct {
	BaseModel
	Number      string          `gorm:"type:varchar(20);uniqueIndex;not null" json:"number"`
	SupplierID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"supplier_id"`
	Supplier    *Supplier       `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	PurchasedAt time.Time       `gorm:"not null;index" json:"purchased_at"`
	Total       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	Lines       []PurchaseLine  `gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE" json:"lines,omitempty"`
}

type PurchaseLine struct {
	BaseModel
	PurchaseID uuid.UUID       `gorm:"type:uuid;not null;index" json:"purchase_id"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Product    *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	UnitCost   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_cost"`
	Subtotal   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
}

type PurchaseItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" validate:"uuid_required"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	UnitCost  decimal.Decimal `json:"unit_cost" validate:"-"`
}

type CreatePurchaseRequest struct {
	SupplierID uuid.UUID             `json:"supplier_id" validate:"uuid_required"`
	Items      []PurchaseItemRequest `json:"items" validate:"required,min=1,dive"`
}

type PurchaseSummary struct {
	ID           uuid.UUID       `json:"id"`
	Number       string          `json:"number"`
	SupplierName string          `json:"supplier_name"`
	Username     string          `json:"username"`
	PurchasedAt  time.Time       `json:"purchased_at"`
	Total        decimal.Decimal `json:"total"`
	ItemCount    int             `json:"item_count"`
}

func (p *Purchase) ToSummary() PurchaseSummary {
	supplierName := ""
	if p.Supplier != nil {
		supplierName = p.Supplier.Name
	}
	username := ""
	if p.User != nil {
		username = p.User.Username
	}
	count := 0
	for _, l := range p.Lines {
		count += l.Quantity
	}
	return PurchaseSummary{
		ID:           p.ID,
		Number:       p.Number,
		SupplierName: supplierName,
		Username:     username,
		PurchasedAt:  p.PurchasedAt,
		Total:        p.Total,
		ItemCount:    count,
	}
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod is the fixed enumeration of accepted tender types
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "Efectivo"
	PaymentCard     PaymentMethod = "Tarjeta"
	PaymentTransfer PaymentMethod = "Transferencia"
)

// IVARate is the tax rate applied when a sale requests tax
var IVARate = decimal.RequireFromString("0.16")

// Sale is a point-of-sale ticket header. Lines are exclusively owned and
// removed together with the header on cancellation.
type Sale struct {
	BaseModel
	Number         string          `gorm:"type:varchar(20);uniqueIndex;not null" json:"number"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	User           *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	SoldAt         time.Time       `gorm:"not null;index" json:"sold_at"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	IVA            decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"iva"`
	Total          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	PaymentMethod  PaymentMethod   `gorm:"type:varchar(20);not null" json:"payment_method"`
	AmountTendered decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount_tendered"`
	Change         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"change"`
	Lines          []SaleLine      `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"lines,omitempty"`
}

type SaleLine struct {
	BaseModel
	SaleID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
}

type SaleItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" validate:"uuid_required"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"-"`
}

type CreateSaleRequest struct {
	Items          []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
	PaymentMethod  PaymentMethod     `json:"payment_method" validate:"required,oneof=Efectivo Tarjeta Transferencia"`
	AmountTendered decimal.Decimal   `json:"amount_tendered" validate:"-"`
	ApplyIVA       bool              `json:"apply_iva"`
}

// SaleSummary is the listing projection (no lines)
type SaleSummary struct {
	ID            uuid.UUID       `json:"id"`
	Number        string          `json:"number"`
	Username      string          `json:"username"`
	SoldAt        time.Time       `json:"sold_at"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	ItemCount     int             `json:"item_count"`
}

// ToSummary flattens a sale for list endpoints
func (s *Sale) ToSummary() SaleSummary {
	username := ""
	if s.User != nil {
		username = s.User.Username
	}
	count := 0
	for _, l := range s.Lines {
		count += l.Quantity
	}
	return SaleSummary{
		ID:            s.ID,
		Number:        s.Number,
		Username:      username,
		SoldAt:        s.SoldAt,
		Total:         s.Total,
		PaymentMethod: s.PaymentMethod,
		ItemCount:     count,
	}
}

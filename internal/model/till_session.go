package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TillSession is one operator's cash drawer period. A session is mutated
// exactly once, at close; the per-method totals and the variance are a frozen
// snapshot of the sales inside [OpenedAt, ClosedAt].
type TillSession struct {
	BaseModel
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	User          *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	OpenedAt      time.Time       `gorm:"not null;index" json:"opened_at"`
	ClosedAt      *time.Time      `json:"closed_at,omitempty"`
	OpeningFloat  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"opening_float"`
	CashSales     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"cash_sales"`
	CardSales     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"card_sales"`
	TransferSales decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"transfer_sales"`
	TotalSales    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total_sales"`
	ClosingCount  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"closing_count"`
	Variance      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"variance"`
	Notes         string          `gorm:"type:text" json:"notes,omitempty"`
	Closed        bool            `gorm:"not null;default:false;index" json:"closed"`
}

// OpenDuration returns how long the session has been (or was) open
func (t *TillSession) OpenDuration() time.Duration {
	if t.ClosedAt != nil {
		return t.ClosedAt.Sub(t.OpenedAt)
	}
	return time.Since(t.OpenedAt)
}

type OpenTillRequest struct {
	OpeningFloat decimal.Decimal `json:"opening_float" validate:"-"`
}

type CloseTillRequest struct {
	ClosingCount decimal.Decimal `json:"closing_count" validate:"-"`
	Notes        string          `json:"notes" validate:"max=500"`
}

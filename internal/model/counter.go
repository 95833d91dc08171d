package model

// DocumentCounter backs the daily-reset number sequences for sales ("V") and
// purchases ("C"). One row per kind per day; incremented atomically inside
// the document's own transaction so concurrent creators never collide.
type DocumentCounter struct {
	Kind    string `gorm:"primaryKey;type:varchar(4)"`
	Day     string `gorm:"primaryKey;type:varchar(8)"` // yyyyMMdd
	Counter int    `gorm:"not null"`
}

const (
	CounterKindSale     = "V"
	CounterKindPurchase = "C"
)

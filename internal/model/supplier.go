package model

// Supplier is a purchase source. RFC is the Mexican fiscal id and must be
// unique when present.
type Supplier struct {
	BaseModel
	Name    string `gorm:"type:varchar(150);not null" json:"name" validate:"required"`
	RFC     string `gorm:"type:varchar(13);index" json:"rfc"`
	Phone   string `gorm:"type:varchar(20)" json:"phone"`
	Email   string `gorm:"type:varchar(255)" json:"email"`
	Address string `gorm:"type:text" json:"address"`
	Active  bool   `gorm:"default:true" json:"active"`
}

type SupplierRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=150"`
	RFC     string `json:"rfc" validate:"omitempty,rfc"`
	Phone   string `json:"phone" validate:"omitempty,max=20"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address" validate:"max=500"`
}

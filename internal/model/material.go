package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaterialCatalogItem is a purchasable conservation material referenced by
// plan lines.
type MaterialCatalogItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name            string          `gorm:"type:varchar(255);not null" json:"name"`
	Category        string          `gorm:"type:varchar(100);index" json:"category"`
	Unit            string          `gorm:"type:varchar(50)" json:"unit"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"unit_price"`
	Supplier        string          `gorm:"type:varchar(255)" json:"supplier"`
	SupplierContact string          `gorm:"type:varchar(255)" json:"supplier_contact"`
	HeritageGrade   string          `gorm:"type:varchar(20);not null;default:'standard'" json:"heritage_grade"`
	Description     string          `gorm:"type:text" json:"description"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

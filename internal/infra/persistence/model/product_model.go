package model

import "time"

// ProductModel mirrors the 'products' table. The stock check constraint is a
// database-level backstop; the compare-and-swap update in the repository is
// what actually keeps stock from going negative under concurrency.
type ProductModel struct {
	ID          int64   `gorm:"primaryKey;autoIncrement"`
	Name        string  `gorm:"type:varchar(100);unique;not null"`
	Description string  `gorm:"type:text"`
	Price       float64 `gorm:"type:numeric(18,2);not null"`
	ImgURL      string  `gorm:"type:varchar(255)"`
	SKU         string  `gorm:"type:varchar(50);not null"`
	Stock       int     `gorm:"not null;default:0;check:stock >= 0"`
	CategoryID  int64   `gorm:"not null"`
	Category    *CategoryModel `gorm:"foreignKey:CategoryID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

package model

import (
	"time"

	"market/internal/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryModel mirrors the 'categories' table. The slug is recomputed from
// the name on every write, so renames never leave a stale slug behind.
type CategoryModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name      string    `gorm:"type:varchar(100);unique;not null"`
	Slug      string    `gorm:"type:varchar(120);unique;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Products []*ProductModel `gorm:"foreignKey:CategoryID"`
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "categories"
}

// BeforeSave derives the slug from the name before any insert or update.
func (m *CategoryModel) BeforeSave(_ *gorm.DB) error {
	m.Slug = util.Slugify(m.Name)

	return nil
}

// ProductModel mirrors the 'products' table. Prices are integer cents.
type ProductModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name        string    `gorm:"type:varchar(200);not null"`
	Slug        string    `gorm:"type:varchar(220);unique;not null"`
	Description string    `gorm:"type:text"`
	PriceCents  int       `gorm:"not null;check:price_cents >= 0"`
	Stock       int       `gorm:"not null;default:0;check:stock >= 0"`
	IsActive    bool      `gorm:"not null;default:true"`
	CategoryID  uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

// BeforeSave derives the slug from the name before any insert or update.
func (m *ProductModel) BeforeSave(_ *gorm.DB) error {
	m.Slug = util.Slugify(m.Name)

	return nil
}

package models

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int             `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductName string          `gorm:"column:product_name;type:varchar(100);not null" json:"productName"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"price" swaggertype:"string"`
	ImageURL    string          `gorm:"column:image_url;type:varchar(255)" json:"imageUrl"`
	Category    string          `gorm:"type:varchar(50);index" json:"category"`
	Amount      int             `gorm:"not null;default:0" json:"amount"`

	CategoryRef *Category `gorm:"foreignKey:Category;references:CategoryName" json:"-"`
}

func (Product) TableName() string {
	return "product"
}

type Category struct {
	CategoryName string `gorm:"column:category_name;primaryKey;type:varchar(50)" json:"categoryName"`
	Description  string `gorm:"column:category_description;type:varchar(255)" json:"description"`
}

func (Category) TableName() string {
	return "product_category"
}

// CatalogProduct is the public listing projection; on-hand amount is not exposed.
type CatalogProduct struct {
	ID          int             `json:"id"`
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price" swaggertype:"string"`
	ImageURL    string          `json:"imageUrl"`
	Category    string          `json:"category"`
}

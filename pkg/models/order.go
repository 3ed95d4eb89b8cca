package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the header row of a placed order. Orders are never updated.
type Order struct {
	ID         int       `gorm:"primaryKey;autoIncrement" json:"orderId"`
	OrderDate  time.Time `gorm:"column:order_date;not null" json:"orderDate"`
	CustomerID int       `gorm:"column:customer_id;not null;index" json:"customerId"`

	Customer *Customer `gorm:"foreignKey:CustomerID" json:"-"`
}

func (Order) TableName() string {
	return "customer_order"
}

// OrderLine has no uniqueness constraint: the same product may appear on
// several lines of one order and all of them count towards demand.
type OrderLine struct {
	OrderID   int `gorm:"column:order_id;not null;index" json:"orderId"`
	ProductID int `gorm:"column:product_id;not null;index" json:"productId"`
	Quantity  int `gorm:"not null" json:"quantity"`

	Order   *Order   `gorm:"foreignKey:OrderID" json:"-"`
	Product *Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (OrderLine) TableName() string {
	return "order_line"
}

type LineItem struct {
	ProductID int `json:"id"`
	Quantity  int `json:"quantity"`
}

// OrderedProduct is a product as it appears on one of the caller's orders.
type OrderedProduct struct {
	ID          int             `json:"id"`
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price" swaggertype:"string"`
	ImageURL    string          `json:"imageUrl"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity"`
}

type CustomerOrder struct {
	OrderDate time.Time        `json:"orderDate"`
	OrderID   int              `json:"orderId"`
	Products  []OrderedProduct `json:"products"`
}

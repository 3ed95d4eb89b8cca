package models

import (
	"github.com/shopspring/decimal"
)

type StockBalance struct {
	ID           int             `json:"id"`
	ProductName  string          `json:"productName"`
	Amount       int             `json:"amount"`
	Price        decimal.Decimal `json:"price" swaggertype:"string"`
	StockBalance decimal.Decimal `json:"stock_balance" swaggertype:"string"`
}

type GrandTotal struct {
	GrandTotal decimal.Decimal `json:"grand_total" swaggertype:"string"`
}

// LowStockProduct is a product whose on-hand amount does not cover the
// quantity ordered across all orders.
type LowStockProduct struct {
	ID           int             `json:"id"`
	ProductName  string          `json:"product_name"`
	Price        decimal.Decimal `json:"price" swaggertype:"string"`
	Amount       int             `json:"amount"`
	TotalOrdered int             `json:"total_ordered"`
}

func (p LowStockProduct) Deficit() int {
	return p.Amount - p.TotalOrdered
}

package repository

import (
	"context"

	"github.com/example/storefront/pkg/models"
)

const lowStockQuery = `
	SELECT p.id, p.product_name, p.price, p.amount, COALESCE(SUM(ol.quantity), 0) AS total_ordered
	FROM product p
	LEFT JOIN order_line ol ON p.id = ol.product_id
	LEFT JOIN customer_order co ON ol.order_id = co.id
	GROUP BY p.id, p.product_name, p.price, p.amount
	HAVING p.amount - COALESCE(SUM(ol.quantity), 0) < 0
	ORDER BY p.id
`

// StockBalance reports amount * price for one product, or for all products
// when productID is empty.
func (s *Store) StockBalance(ctx context.Context, productID string) ([]models.StockBalance, error) {
	query := s.db.WithContext(ctx).
		Table("product").
		Select("id, product_name, amount, price, amount * price AS stock_balance")
	if productID != "" {
		query = query.Where("id = ?", productID)
	}

	rows := []models.StockBalance{}
	if err := query.Order("id").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GrandTotal sums amount * price over the whole inventory. It is computed on
// every call.
func (s *Store) GrandTotal(ctx context.Context) (*models.GrandTotal, error) {
	var total models.GrandTotal
	err := s.db.WithContext(ctx).
		Table("product").
		Select("COALESCE(SUM(amount * price), 0) AS grand_total").
		Scan(&total).Error
	if err != nil {
		return nil, err
	}
	return &total, nil
}

// LowStockProducts returns the products whose on-hand amount is smaller than
// the total quantity on all order lines. Products nobody ordered are never
// included.
func (s *Store) LowStockProducts(ctx context.Context) ([]models.LowStockProduct, error) {
	rows := []models.LowStockProduct{}
	if err := s.db.WithContext(ctx).Raw(lowStockQuery).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

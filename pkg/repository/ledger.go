package repository

import (
	"context"

	"github.com/example/storefront/pkg/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PlaceOrder records an order header and one order_line row per item, in the
// order given, inside a single transaction. It returns the generated order id.
//
// Stock is not checked or reserved: an order may take a product below zero
// on-hand, and two concurrent orders may jointly overdraw the same product.
// Such deficits show up in LowStockProducts.
func (s *Store) PlaceOrder(ctx context.Context, customerID int, items []models.LineItem) (int, error) {
	var orderID int

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order := models.Order{
			OrderDate:  s.now().UTC(),
			CustomerID: customerID,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, item := range items {
			line := models.OrderLine{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to place order",
			zap.Int("customer_id", customerID),
			zap.Int("line_count", len(items)),
			zap.Error(err))
		return 0, err
	}

	return orderID, nil
}

// OrdersByUsername lists the orders of one customer, oldest first, each with
// the products on its lines.
func (s *Store) OrdersByUsername(ctx context.Context, username string) ([]models.CustomerOrder, error) {
	db := s.db.WithContext(ctx)

	var orders []models.Order
	err := db.Model(&models.Order{}).
		Select("customer_order.id, customer_order.order_date, customer_order.customer_id").
		Joins("INNER JOIN customer ON customer.id = customer_order.customer_id").
		Where("customer.username = ?", username).
		Order("customer_order.id").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	result := make([]models.CustomerOrder, 0, len(orders))
	for _, order := range orders {
		products := []models.OrderedProduct{}
		err := db.Table("product").
			Select("product.id, product.product_name, product.price, product.image_url, product.category, order_line.quantity").
			Joins("INNER JOIN order_line ON order_line.product_id = product.id").
			Where("order_line.order_id = ?", order.ID).
			Scan(&products).Error
		if err != nil {
			return nil, err
		}

		result = append(result, models.CustomerOrder{
			OrderDate: order.OrderDate,
			OrderID:   order.ID,
			Products:  products,
		})
	}

	return result, nil
}

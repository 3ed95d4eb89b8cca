package repository

import (
	"context"

	"github.com/example/storefront/pkg/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductFilter selects products by id, name or category. The first
// non-empty field wins; an empty filter matches every product.
type ProductFilter struct {
	ID       string
	Name     string
	Category string
}

func (s *Store) ListProducts(ctx context.Context, filter ProductFilter) ([]models.CatalogProduct, error) {
	query := s.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("id, product_name, price, image_url, category")

	switch {
	case filter.ID != "":
		query = query.Where("id = ?", filter.ID)
	case filter.Name != "":
		query = query.Where("product_name = ?", filter.Name)
	case filter.Category != "":
		query = query.Where("category = ?", filter.Category)
	}

	products := []models.CatalogProduct{}
	if err := query.Order("id").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListCategories returns the categories called name. Without a name nothing
// matches.
func (s *Store) ListCategories(ctx context.Context, name string) ([]models.Category, error) {
	categories := []models.Category{}
	if name == "" {
		return categories, nil
	}

	if err := s.db.WithContext(ctx).Where("category_name = ?", name).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// AddCategories inserts all categories or none of them.
func (s *Store) AddCategories(ctx context.Context, categories []models.Category) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range categories {
			if err := tx.Create(&categories[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// AddProducts inserts all products or none of them.
func (s *Store) AddProducts(ctx context.Context, products []models.Product) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range products {
			if err := tx.Create(&products[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdatePrice sets the unit price of one product. Updating an unknown id is
// not an error.
func (s *Store) UpdatePrice(ctx context.Context, id int, price decimal.Decimal) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(&models.Product{}).Where("id = ?", id).Update("price", price).Error
	})
}

package repository

import (
	"context"
	"errors"

	"github.com/example/storefront/pkg/models"
	"gorm.io/gorm"
)

func (s *Store) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	return s.db.WithContext(ctx).Create(customer).Error
}

// PasswordHash returns the stored hash for username, or ErrCustomerNotFound.
func (s *Store) PasswordHash(ctx context.Context, username string) (string, error) {
	var customer models.Customer
	err := s.db.WithContext(ctx).Select("pw").Where("username = ?", username).Take(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrCustomerNotFound
		}
		return "", err
	}
	return customer.PasswordHash, nil
}

func (s *Store) ProfileByUsername(ctx context.Context, username string) (*models.Profile, error) {
	var customer models.Customer
	err := s.db.WithContext(ctx).
		Select("first_name, last_name, username").
		Where("username = ?", username).
		Take(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	return &models.Profile{
		FirstName: customer.FirstName,
		LastName:  customer.LastName,
		Username:  customer.Username,
	}, nil
}

package repository

import (
	"errors"
	"strings"

	clientdomain "crmdesk-backend/internal/client/domain"

	"gorm.io/gorm"
)

// clientRepository implements ClientRepository interface
type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new instance of clientRepository
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{
		db: db,
	}
}

func (r *clientRepository) FindByEmail(tenantID, email string) (*clientdomain.Client, error) {
	var client clientdomain.Client
	err := r.db.Where("tenant_id = ? AND LOWER(email) = ?", tenantID, strings.ToLower(email)).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) FindByID(tenantID, id string) (*clientdomain.Client, error) {
	var client clientdomain.Client
	err := r.db.Where("tenant_id = ? AND id = ?", tenantID, id).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

package repository

import (
	"errors"
	"time"

	accountdomain "crmdesk-backend/internal/account/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// accountRepository implements AccountRepository interface
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new instance of accountRepository
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{
		db: db,
	}
}

func (r *accountRepository) Upsert(account *accountdomain.EmailAccount) error {
	now := time.Now()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(account).Error
}

func (r *accountRepository) FindByID(tenantID, id string) (*accountdomain.EmailAccount, error) {
	var account accountdomain.EmailAccount
	err := r.db.Where("tenant_id = ? AND id = ?", tenantID, id).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) ListByTenant(tenantID string) ([]*accountdomain.EmailAccount, error) {
	var accounts []*accountdomain.EmailAccount
	err := r.db.Where("tenant_id = ?", tenantID).Order("connected_at DESC").Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *accountRepository) Delete(tenantID, id string) error {
	return r.db.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&accountdomain.EmailAccount{}).Error
}

func (r *accountRepository) SetSyncStatus(tenantID, id, status string, lastSyncAt *time.Time) error {
	updates := map[string]interface{}{
		"sync_status": status,
		"updated_at":  time.Now(),
	}
	if lastSyncAt != nil {
		updates["last_sync_at"] = *lastSyncAt
	}
	return r.db.Model(&accountdomain.EmailAccount{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Updates(updates).Error
}

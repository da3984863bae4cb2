package repository

import (
	"errors"
	"fmt"
	"time"

	emaildomain "crmdesk-backend/internal/email/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// emailRepository implements EmailRepository interface
type emailRepository struct {
	db *gorm.DB
}

// NewEmailRepository creates a new instance of emailRepository
func NewEmailRepository(db *gorm.DB) EmailRepository {
	return &emailRepository{
		db: db,
	}
}

func (r *emailRepository) Upsert(email *emaildomain.Email) error {
	if len(email.ClientIDs) == 0 {
		return fmt.Errorf("refusing to persist email %s without client links", email.MessageID)
	}

	now := time.Now()
	if email.CreatedAt.IsZero() {
		email.CreatedAt = now
	}
	email.UpdatedAt = now

	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "message_id"}, {Name: "tenant_id"}},
			UpdateAll: true,
		}).Create(email).Error
		if err != nil {
			return err
		}

		// Rewrite links so a re-sync replaces the matched set instead of
		// accumulating stale rows.
		err = tx.Where("tenant_id = ? AND message_id = ?", email.TenantID, email.MessageID).
			Delete(&emaildomain.EmailClientLink{}).Error
		if err != nil {
			return err
		}

		links := make([]emaildomain.EmailClientLink, 0, len(email.ClientIDs))
		for _, clientID := range email.ClientIDs {
			links = append(links, emaildomain.EmailClientLink{
				TenantID:  email.TenantID,
				MessageID: email.MessageID,
				ClientID:  clientID,
			})
		}
		return tx.Create(&links).Error
	})
}

func (r *emailRepository) FindByMessageID(tenantID, messageID string) (*emaildomain.Email, error) {
	var email emaildomain.Email
	err := r.db.Where("tenant_id = ? AND message_id = ?", tenantID, messageID).First(&email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.loadClientIDs(&email); err != nil {
		return nil, err
	}
	return &email, nil
}

func (r *emailRepository) ListByTenant(tenantID string, limit, offset int) ([]*emaildomain.Email, error) {
	if limit <= 0 {
		limit = 50
	}

	var emails []*emaildomain.Email
	err := r.db.Where("tenant_id = ?", tenantID).
		Order("received_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&emails).Error
	if err != nil {
		return nil, err
	}

	for _, email := range emails {
		if err := r.loadClientIDs(email); err != nil {
			return nil, err
		}
	}
	return emails, nil
}

func (r *emailRepository) ListByClient(tenantID, clientID string) ([]*emaildomain.Email, error) {
	var emails []*emaildomain.Email
	err := r.db.
		Joins("JOIN email_client_links ON email_client_links.tenant_id = emails.tenant_id AND email_client_links.message_id = emails.message_id").
		Where("emails.tenant_id = ? AND email_client_links.client_id = ?", tenantID, clientID).
		Order("emails.received_at DESC").
		Find(&emails).Error
	if err != nil {
		return nil, err
	}

	for _, email := range emails {
		if err := r.loadClientIDs(email); err != nil {
			return nil, err
		}
	}
	return emails, nil
}

func (r *emailRepository) UpdateFlags(tenantID, messageID string, isRead, isStarred bool) error {
	return r.db.Model(&emaildomain.Email{}).
		Where("tenant_id = ? AND message_id = ?", tenantID, messageID).
		Updates(map[string]interface{}{
			"is_read":    isRead,
			"is_starred": isStarred,
			"updated_at": time.Now(),
		}).Error
}

func (r *emailRepository) Delete(tenantID, messageID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("tenant_id = ? AND message_id = ?", tenantID, messageID).
			Delete(&emaildomain.EmailClientLink{}).Error
		if err != nil {
			return err
		}
		return tx.Where("tenant_id = ? AND message_id = ?", tenantID, messageID).
			Delete(&emaildomain.Email{}).Error
	})
}

func (r *emailRepository) loadClientIDs(email *emaildomain.Email) error {
	var links []emaildomain.EmailClientLink
	err := r.db.Where("tenant_id = ? AND message_id = ?", email.TenantID, email.MessageID).
		Order("client_id").
		Find(&links).Error
	if err != nil {
		return err
	}

	email.ClientIDs = make([]string, 0, len(links))
	for _, link := range links {
		email.ClientIDs = append(email.ClientIDs, link.ClientID)
	}
	return nil
}

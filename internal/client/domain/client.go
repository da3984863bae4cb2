package domain

import "time"

// Client is one row of the tenant's client roster. The email engine only
// reads it: roster management belongs to the CRM proper.
type Client struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	TenantID  string    `json:"tenant_id" gorm:"index:idx_clients_tenant_email"`
	Name      string    `json:"name"`
	Email     string    `json:"email" gorm:"index:idx_clients_tenant_email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Client) TableName() string {
	return "clients"
}

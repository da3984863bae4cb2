package dto

import (
	accountdomain "crmdesk-backend/internal/account/domain"
)

type ConnectAccountRequest struct {
	AccessToken string `json:"access_token" binding:"required"`
}

type AccountsResponse struct {
	Accounts []*accountdomain.EmailAccount `json:"accounts"`
}

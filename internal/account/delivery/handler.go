package delivery

import (
	"errors"
	"net/http"

	accountdto "crmdesk-backend/internal/account/dto"
	"crmdesk-backend/internal/account/usecase"
	emaildomain "crmdesk-backend/internal/email/domain"

	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	accountUsecase usecase.AccountUsecase
}

func NewAccountHandler(accountUsecase usecase.AccountUsecase) *AccountHandler {
	return &AccountHandler{
		accountUsecase: accountUsecase,
	}
}

func (h *AccountHandler) Connect(c *gin.Context) {
	var req accountdto.ConnectAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tenantID := c.GetString("tenantID")
	account, err := h.accountUsecase.Connect(c.Request.Context(), tenantID, req.AccessToken)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, account)
}

func (h *AccountHandler) List(c *gin.Context) {
	tenantID := c.GetString("tenantID")
	accounts, err := h.accountUsecase.List(tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, accountdto.AccountsResponse{Accounts: accounts})
}

func (h *AccountHandler) Disconnect(c *gin.Context) {
	tenantID := c.GetString("tenantID")
	accountID := c.Param("id")

	err := h.accountUsecase.Disconnect(tenantID, accountID)
	if err != nil {
		if errors.Is(err, emaildomain.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "account disconnected"})
}

func (h *AccountHandler) GetSignature(c *gin.Context) {
	tenantID := c.GetString("tenantID")
	accountID := c.Param("id")

	signature, err := h.accountUsecase.GetSignature(c.Request.Context(), tenantID, accountID)
	if err != nil {
		if errors.Is(err, emaildomain.ErrMissingToken) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "account not connected"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, signature)
}

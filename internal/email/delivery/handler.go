package delivery

import (
	"errors"
	"net/http"
	"strconv"

	emaildomain "crmdesk-backend/internal/email/domain"
	emaildto "crmdesk-backend/internal/email/dto"
	"crmdesk-backend/internal/email/usecase"

	"github.com/gin-gonic/gin"
)

type EmailHandler struct {
	emailUsecase      usecase.EmailUsecase
	defaultMaxResults int64
}

func NewEmailHandler(emailUsecase usecase.EmailUsecase, defaultMaxResults int64) *EmailHandler {
	return &EmailHandler{
		emailUsecase:      emailUsecase,
		defaultMaxResults: defaultMaxResults,
	}
}

func (h *EmailHandler) Sync(c *gin.Context) {
	var req emaildto.SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tenantID := c.GetString("tenantID")
	accountID := c.Param("id")

	if req.MaxResults <= 0 {
		req.MaxResults = h.defaultMaxResults
	}

	result, err := h.emailUsecase.Sync(c.Request.Context(), tenantID, accountID, req.MaxResults)
	if err != nil {
		switch {
		case errors.Is(err, emaildomain.ErrAccountNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
		case errors.Is(err, emaildomain.ErrMissingToken):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "account not connected"})
		case errors.Is(err, emaildomain.ErrSyncInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": "sync already in progress"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, emaildto.SyncResponse{
		Matched:     result.Matched,
		Unmatched:   result.Unmatched,
		TotalSynced: result.TotalSynced,
	})
}

func (h *EmailHandler) Link(c *gin.Context) {
	var req emaildto.LinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tenantID := c.GetString("tenantID")

	var email *emaildomain.Email
	var err error
	switch {
	case req.Candidate != nil:
		email, err = h.emailUsecase.LinkToClient(tenantID, req.Candidate, req.ClientID)
	case req.MessageID != "":
		email, err = h.emailUsecase.LinkPending(tenantID, req.MessageID, req.ClientID)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "message_id or candidate required"})
		return
	}

	if err != nil {
		if errors.Is(err, emaildomain.ErrCandidateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "candidate not found"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, email)
}

func (h *EmailHandler) BulkLink(c *gin.Context) {
	var req emaildto.BulkLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tenantID := c.GetString("tenantID")
	result := h.emailUsecase.BulkLinkToClient(tenantID, req.Candidates, req.ClientID)

	status := http.StatusOK
	if len(result.Failed) > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, result)
}

func (h *EmailHandler) Discard(c *gin.Context) {
	var req emaildto.DiscardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tenantID := c.GetString("tenantID")
	h.emailUsecase.Discard(tenantID, req.MessageID)

	c.JSON(http.StatusOK, gin.H{"message": "candidate discarded"})
}

func (h *EmailHandler) ListPending(c *gin.Context) {
	tenantID := c.GetString("tenantID")
	c.JSON(http.StatusOK, emaildto.CandidatesResponse{
		Candidates: h.emailUsecase.ListPending(tenantID),
	})
}

func (h *EmailHandler) GetEmails(c *gin.Context) {
	tenantID := c.GetString("tenantID")

	limit := 50
	offset := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if parsed, err := strconv.Atoi(offsetStr); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	emails, err := h.emailUsecase.GetEmailsForTenant(tenantID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, emaildto.EmailsResponse{
		Emails: emails,
		Limit:  limit,
		Offset: offset,
	})
}

func (h *EmailHandler) GetEmailsForClient(c *gin.Context) {
	tenantID := c.GetString("tenantID")
	clientID := c.Param("clientId")

	emails, err := h.emailUsecase.GetEmailsForClient(tenantID, clientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, emaildto.EmailsResponse{Emails: emails, Limit: len(emails)})
}

func (h *EmailHandler) MarkAsRead(c *gin.Context) {
	h.setRead(c, true)
}

func (h *EmailHandler) MarkAsUnread(c *gin.Context) {
	h.setRead(c, false)
}

func (h *EmailHandler) setRead(c *gin.Context, read bool) {
	tenantID := c.GetString("tenantID")
	accountID := c.Query("account_id")
	messageID := c.Param("id")

	err := h.emailUsecase.MarkRead(c.Request.Context(), tenantID, accountID, messageID, read)
	if err != nil {
		if errors.Is(err, emaildomain.ErrMissingToken) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "account not connected"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "email updated"})
}

func (h *EmailHandler) ToggleStar(c *gin.Context) {
	tenantID := c.GetString("tenantID")
	accountID := c.Query("account_id")
	messageID := c.Param("id")

	starred, err := h.emailUsecase.ToggleStar(c.Request.Context(), tenantID, accountID, messageID)
	if err != nil {
		if errors.Is(err, emaildomain.ErrMissingToken) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "account not connected"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_starred": starred})
}

func (h *EmailHandler) SendEmail(c *gin.Context) {
	var req emaildto.SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tenantID := c.GetString("tenantID")
	id, err := h.emailUsecase.SendEmail(c.Request.Context(), tenantID, req.AccountID, emaildomain.OutgoingMessage{
		To:       req.To,
		Cc:       req.Cc,
		Bcc:      req.Bcc,
		Subject:  req.Subject,
		HTMLBody: req.Body,
		ThreadID: req.ThreadID,
	})
	if err != nil {
		if errors.Is(err, emaildomain.ErrMissingToken) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "account not connected"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message_id": id})
}

func (h *EmailHandler) DeleteEmail(c *gin.Context) {
	tenantID := c.GetString("tenantID")
	messageID := c.Param("id")

	if err := h.emailUsecase.DeleteEmail(tenantID, messageID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "email deleted"})
}

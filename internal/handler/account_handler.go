package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/malekjani/devops-capstone-project/internal/middleware"
	"github.com/malekjani/devops-capstone-project/internal/models"
	"github.com/malekjani/devops-capstone-project/internal/repository"
)

// AccountService defines the operations used by AccountHandler.
type AccountService interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	Get(ctx context.Context, id int64) (*models.Account, error)
	List(ctx context.Context) ([]models.Account, error)
	Update(ctx context.Context, id int64, account *models.Account) (*models.Account, error)
	Delete(ctx context.Context, id int64) error
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	service AccountService
}

// AccountRequest is the payload for POST and PUT /accounts. Both verbs share
// the same deserialization contract: name, email and address are required.
type AccountRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Address     string `json:"address" validate:"required"`
	PhoneNumber string `json:"phone_number"`
	DateJoined  string `json:"date_joined" validate:"omitempty,datetime=2006-01-02"`
}

func NewAccountHandler(service AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// toModel converts a validated request into an Account. The date format has
// already been checked by the datetime validator tag.
func (req *AccountRequest) toModel() *models.Account {
	account := &models.Account{
		Name:        req.Name,
		Email:       req.Email,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
	}
	if req.DateJoined != "" {
		if d, err := models.ParseDate(req.DateJoined); err == nil {
			account.DateJoined = d
		}
	}
	return account
}

// accountID parses the :id path parameter. A non-integer id behaves like a
// missing resource.
func accountID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	account, err := h.service.Create(c.Request.Context(), req.toModel())
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.Header("Location", fmt.Sprintf("/accounts/%d", account.ID))
	c.JSON(http.StatusCreated, account)
}

func (h *AccountHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.service.List(c.Request.Context())
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, accounts)
}

func (h *AccountHandler) GetAccount(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusNotFound, "Account not found")
		return
	}

	account, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound,
				fmt.Sprintf("Account with id [%d] could not be found", id))
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, account)
}

func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusNotFound, "Account not found")
		return
	}

	// Existence is checked before the body: updating a missing account is
	// 404 even when the payload is also invalid.
	if _, err := h.service.Get(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound,
				fmt.Sprintf("Account with id [%d] could not be found", id))
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	var req AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	account, err := h.service.Update(c.Request.Context(), id, req.toModel())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound,
				fmt.Sprintf("Account with id [%d] could not be found", id))
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, account)
}

func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusNotFound, "Account not found")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.Status(http.StatusNoContent)
}

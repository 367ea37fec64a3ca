// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/accountservice"
	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/domain"
	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/middleware"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/errorspkg"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/tokenpkg"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/web"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Create(ctx context.Context, owner string) (domain.Account, bool, error)
	Get(ctx context.Context, id int32) (domain.Account, error)
	List(ctx context.Context, owner, currency string, pageSize, pageID int32) ([]domain.Account, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(as Service) *Handler {
	return &Handler{service: as}
}

type data struct {
	Account domain.Account `json:"account"`
}

type response struct {
	Data data `json:"data,omitempty"`
}

// Create handles http request to open the user's account. Repeated calls
// return the already opened account.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	account, created, err := h.service.Create(ctx, authPayload.Username)
	if err != nil {
		if err == domain.ErrOwnerNotFound {
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	if !created {
		gctx.JSON(http.StatusOK, web.Response{
			Status: fmt.Sprintf("you already have account %d", account.ID),
			Data:   data{account},
		})

		return
	}

	gctx.JSON(http.StatusCreated, response{Data: data{account}})
}

type getRequestURI struct {
	ID int32 `uri:"id" binding:"required,min=1"`
}

type getRequestQuery struct {
	Currency string `form:"currency" binding:"omitempty,currency"`
}

// Get handles http request to get the account with its balance shown in the
// requested display currency.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri getRequestURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			errMsg = web.DescribeValidationErr(ve)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	var query getRequestQuery
	if err := gctx.ShouldBindQuery(&query); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			errMsg = web.DescribeValidationErr(ve)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	account, err := h.service.Get(ctx, uri.ID)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)
	if account.Owner != authPayload.Username {
		l.Warn().Err(domain.ErrAccountOwnerMismatch).Send()
		gctx.JSON(http.StatusForbidden, web.Error(domain.ErrAccountOwnerMismatch))

		return
	}

	account, err = accountservice.InDisplayCurrency(account, query.Currency)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{account}})
}

type listRequest struct {
	Currency string `form:"currency" binding:"omitempty,currency"`
	PageID   int32  `form:"page_id" binding:"omitempty,min=1"`
	PageSize int32  `form:"page_size" binding:"omitempty,min=1,max=100"`
}

type dataAccounts struct {
	Accounts []domain.Account `json:"accounts"`
}

type responseAccounts struct {
	Data dataAccounts `json:"data,omitempty"`
}

// List handles http request to list the user's accounts with balances shown
// in the requested display currency.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			errMsg = web.DescribeValidationErr(ve)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	if req.PageID == 0 {
		req.PageID = 1
	}

	if req.PageSize == 0 {
		req.PageSize = 20
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	accounts, err := h.service.List(ctx, authPayload.Username, req.Currency, req.PageSize, req.PageID)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, responseAccounts{Data: dataAccounts{accounts}})
}

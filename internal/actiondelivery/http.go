// Package actiondelivery manages delivery layer of deposit actions.
package actiondelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/domain"
	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/middleware"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/errorspkg"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/tokenpkg"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/web"
)

// Service provides service layer interface needed by action delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package actiondelivery
type Service interface {
	Deposit(ctx context.Context, username string, accountID int32, amount string) (domain.DepositTxResult, error)
	List(ctx context.Context, username, orderBy string, pageSize, pageID int32) ([]domain.Action, error)
}

// Handler facilitates action delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns action handler.
func NewHandler(as Service) *Handler {
	return &Handler{service: as}
}

type depositRequest struct {
	AccountID int32  `json:"account_id" binding:"required,min=1"`
	Amount    string `json:"amount" binding:"required"`
}

type data struct {
	Action  domain.Action  `json:"action"`
	Account domain.Account `json:"account"`
}

type response struct {
	Data data `json:"data,omitempty"`
}

// Deposit handles http request to credit the user's account.
func (h *Handler) Deposit(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req depositRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
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

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	result, err := h.service.Deposit(ctx, authPayload.Username, req.AccountID, req.Amount)
	if err != nil {
		switch err {
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case
			domain.ErrAccountOwnerMismatch,
			domain.ErrInvalidAmount,
			domain.ErrNonPositiveAmount,
			domain.ErrAmountPrecision:
			gctx.JSON(http.StatusBadRequest, web.Error(err))

			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := response{
		Data: data{
			Action:  result.Action,
			Account: result.Account,
		},
	}

	gctx.JSON(http.StatusCreated, res)
}

type listRequest struct {
	OrderBy  string `form:"ordering" binding:"omitempty,oneof=date amount"`
	PageID   int32  `form:"page_id" binding:"omitempty,min=1"`
	PageSize int32  `form:"page_size" binding:"omitempty,min=1,max=100"`
}

type dataActions struct {
	Actions []domain.Action `json:"actions"`
}

type responseActions struct {
	Data dataActions `json:"data,omitempty"`
}

// List handles http request to list the user's deposit actions.
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

	actions, err := h.service.List(ctx, authPayload.Username, req.OrderBy, req.PageSize, req.PageID)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, responseActions{Data: dataActions{actions}})
}

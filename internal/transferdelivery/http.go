// Package transferdelivery manages delivery layer of transfers.
package transferdelivery

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

// Service provides service layer interface needed by transfer delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transferdelivery
type Service interface {
	Transfer(ctx context.Context, fromUsername string, arg domain.CreateTransferParams) (domain.TransferTxResult, error)
	List(ctx context.Context, username, orderBy string, pageSize, pageID int32) ([]domain.Transfer, error)
	ListToMyAccount(ctx context.Context, username, orderBy string, pageSize, pageID int32) ([]domain.Transfer, error)
}

// Handler facilitates transfer delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transfer handler.
func NewHandler(ts Service) *Handler {
	return &Handler{service: ts}
}

type createRequest struct {
	FromAccountID int32  `json:"from_account_id" binding:"required,min=1"`
	ToAccountID   int32  `json:"to_account_id" binding:"required,min=1"`
	Amount        string `json:"amount" binding:"required"`
}

type data struct {
	Transfer    domain.Transfer `json:"transfer"`
	FromAccount domain.Account  `json:"from_account"`
	ToAccount   domain.Account  `json:"to_account"`
}

type response struct {
	Data data `json:"data,omitempty"`
}

// Create handles http request to move funds between two accounts.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
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

	arg := domain.CreateTransferParams{
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        req.Amount,
	}

	result, err := h.service.Transfer(ctx, authPayload.Username, arg)
	if err != nil {
		l.Info().Err(err).Send()

		switch err {
		case
			domain.ErrAccountNotFound,
			domain.ErrAccountOwnerMismatch,
			domain.ErrSameAccountTransfer,
			domain.ErrInvalidAmount,
			domain.ErrNonPositiveAmount,
			domain.ErrAmountPrecision:
			gctx.JSON(http.StatusBadRequest, web.Error(err))

			return
		case domain.ErrInsufficientBalance:
			gctx.JSON(http.StatusPaymentRequired, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := response{
		Data: data{
			Transfer:    result.Transfer,
			FromAccount: result.FromAccount,
			ToAccount:   result.ToAccount,
		},
	}

	gctx.JSON(http.StatusCreated, res)
}

type listRequest struct {
	OrderBy  string `form:"ordering" binding:"omitempty,oneof=date amount"`
	PageID   int32  `form:"page_id" binding:"omitempty,min=1"`
	PageSize int32  `form:"page_size" binding:"omitempty,min=1,max=100"`
}

type dataTransfers struct {
	Transfers []domain.Transfer `json:"transfers"`
}

type responseTransfers struct {
	Data dataTransfers `json:"data,omitempty"`
}

func (h *Handler) list(gctx *gin.Context,
	listFn func(ctx context.Context, username, orderBy string, pageSize, pageID int32) ([]domain.Transfer, error),
) {
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

	transfers, err := listFn(ctx, authPayload.Username, req.OrderBy, req.PageSize, req.PageID)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, responseTransfers{Data: dataTransfers{transfers}})
}

// List handles http request to list the user's outgoing transfers.
func (h *Handler) List(gctx *gin.Context) {
	h.list(gctx, h.service.List)
}

// ListToMyAccount handles http request to list transfers received by the
// user's account.
func (h *Handler) ListToMyAccount(gctx *gin.Context) {
	h.list(gctx, h.service.ListToMyAccount)
}

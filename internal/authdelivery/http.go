// Package authdelivery manages delivery layer of email sign-in.
package authdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/domain"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/errorspkg"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/web"
)

// Service provides service layer interface needed by auth delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package authdelivery
type Service interface {
	SendConfirmationCode(ctx context.Context, email string) error
	IssueToken(ctx context.Context, email, code string) (string, error)
}

// Handler facilitates auth delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns auth handler.
func NewHandler(as Service) *Handler {
	return &Handler{service: as}
}

type sendCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// SendCode handles http request to email a sign-in confirmation code.
func (h *Handler) SendCode(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req sendCodeRequest
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

	if err := h.service.SendConfirmationCode(ctx, req.Email); err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Status("confirmation code sent"))
}

type issueTokenRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

// IssueToken handles http request to exchange a confirmation code for an
// access token.
func (h *Handler) IssueToken(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req issueTokenRequest
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

	token, err := h.service.IssueToken(ctx, req.Email, req.Code)
	if err != nil {
		switch err {
		case domain.ErrUserNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case
			domain.ErrConfirmationCodeNotFound,
			domain.ErrInvalidConfirmationCode,
			domain.ErrExpiredConfirmationCode:
			gctx.JSON(http.StatusBadRequest, web.Error(err))

			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Token: token})
}

package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/domain"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/errorspkg"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/tokenpkg"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/web"
)

// ErrAdminRequired indicates that the endpoint is restricted to admins.
var ErrAdminRequired = errors.New("admin role required")

// UserGetter provides the user lookup needed for role checks.
//
//go:generate mockgen -source role.go -destination role_mock.go -package middleware
type UserGetter interface {
	Get(ctx context.Context, username string) (domain.User, error)
}

// RequireAdmin rejects requests whose authenticated user does not hold the
// admin role. It must run after AuthMiddleware.
func RequireAdmin(users UserGetter) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		payload := gctx.MustGet(AuthPayloadKey).(*tokenpkg.Payload)

		user, err := users.Get(gctx.Request.Context(), payload.Username)
		if err != nil {
			if err == domain.ErrUserNotFound {
				gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))
				return
			}

			gctx.AbortWithStatusJSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

			return
		}

		if user.Role != domain.RoleAdmin {
			gctx.AbortWithStatusJSON(http.StatusForbidden, web.Error(ErrAdminRequired))
			return
		}

		gctx.Next()
	}
}

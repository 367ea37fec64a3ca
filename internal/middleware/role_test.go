package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/domain"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/errorspkg"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/randompkg"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/tokenpkg"
)

func TestRequireAdmin(t *testing.T) {
	testUsername := randompkg.Owner()

	tokenMaker, err := tokenpkg.NewJWTMaker(randompkg.String(32))
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userGetter := NewMockUserGetter(ctrl)

	gin.SetMode(gin.ReleaseMode)
	server := gin.New()

	adminPath := "/admin"
	server.GET(adminPath,
		AuthMiddleware(tokenMaker),
		RequireAdmin(userGetter),
		func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{})
		})

	testCases := []struct {
		name           string
		buildStubs     func(userGetter *MockUserGetter)
		wantStatusCode int
	}{
		{
			name: "UserNotFound",
			buildStubs: func(userGetter *MockUserGetter) {
				userGetter.EXPECT().
					Get(gomock.Any(), gomock.Eq(testUsername)).
					Times(1).
					Return(domain.User{}, domain.ErrUserNotFound)
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name: "InternalError",
			buildStubs: func(userGetter *MockUserGetter) {
				userGetter.EXPECT().
					Get(gomock.Any(), gomock.Eq(testUsername)).
					Times(1).
					Return(domain.User{}, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
		},
		{
			name: "NotAdmin",
			buildStubs: func(userGetter *MockUserGetter) {
				userGetter.EXPECT().
					Get(gomock.Any(), gomock.Eq(testUsername)).
					Times(1).
					Return(domain.User{Username: testUsername, Role: domain.RoleUser}, nil)
			},
			wantStatusCode: http.StatusForbidden,
		},
		{
			name: "Admin",
			buildStubs: func(userGetter *MockUserGetter) {
				userGetter.EXPECT().
					Get(gomock.Any(), gomock.Eq(testUsername)).
					Times(1).
					Return(domain.User{Username: testUsername, Role: domain.RoleAdmin}, nil)
			},
			wantStatusCode: http.StatusOK,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			tc.buildStubs(userGetter)

			recorder := httptest.NewRecorder()

			request, err := http.NewRequest(http.MethodGet, adminPath, nil)
			require.NoError(t, err)

			require.NoError(t, AddAuthorization(request, tokenMaker, AuthTypeBearer, testUsername, time.Minute))

			server.ServeHTTP(recorder, request)
			require.Equal(t, tc.wantStatusCode, recorder.Code)
		})
	}
}

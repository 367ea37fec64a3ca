//go:build integration

package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/domain"
	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/integrationtest"
	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/middleware"
	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/test"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/randompkg"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/tokenpkg"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/web"
)

type userData struct {
	User domain.User `json:"user"`
}

func doRequest(t *testing.T, method, url string, body []byte, username string) (int, web.Response) {
	t.Helper()

	tokenMaker, err := tokenpkg.NewJWTMaker(server.Config.TokenSymmetricKey)
	require.NoError(t, err)

	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	require.NoError(t, err)

	if username != "" {
		err = middleware.AddAuthorization(req, tokenMaker,
			middleware.AuthTypeBearer, username, server.Config.AccessTokenDuration)
		require.NoError(t, err)
	}

	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	res := web.Response{Data: &userData{}}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&res))

	return w.Code, res
}

func TestMeAPI(t *testing.T) {
	defer integrationtest.Flush(t, server.DB)

	user := test.SeedUser(t, server.DB)

	code, res := doRequest(t, http.MethodGet, "/v1/users/me/", nil, user.Username)
	require.Equal(t, http.StatusOK, code)

	got := res.Data.(*userData)

	compareCreatedAt := cmpopts.EquateApproxTime(time.Second)
	if diff := cmp.Diff(user, got.User, compareCreatedAt); diff != "" {
		t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateMeAPI(t *testing.T) {
	defer integrationtest.Flush(t, server.DB)

	user := test.SeedUser(t, server.DB)

	body, err := json.Marshal(struct {
		FirstName string `json:"first_name"`
		Bio       string `json:"bio"`
	}{FirstName: "Jane", Bio: "gopher"})
	require.NoError(t, err)

	code, res := doRequest(t, http.MethodPatch, "/v1/users/me/", body, user.Username)
	require.Equal(t, http.StatusOK, code)

	got := res.Data.(*userData)

	require.Equal(t, "Jane", got.User.FirstName)
	require.Equal(t, "gopher", got.User.Bio)

	// Untouched fields keep their values and the role cannot be changed here.
	require.Equal(t, user.LastName, got.User.LastName)
	require.Equal(t, domain.RoleUser, got.User.Role)
}

func TestAdminRoutesAPI(t *testing.T) {
	defer integrationtest.Flush(t, server.DB)

	admin := test.SeedUserWithRole(t, server.DB, domain.RoleAdmin)
	regular := test.SeedUser(t, server.DB)

	t.Run("AdminCreatesUser", func(t *testing.T) {
		body, err := json.Marshal(struct {
			Username string `json:"username"`
			Email    string `json:"email"`
			Role     string `json:"role"`
		}{Username: randompkg.Owner(), Email: randompkg.Email(), Role: domain.RoleModerator})
		require.NoError(t, err)

		code, res := doRequest(t, http.MethodPost, "/v1/users/", body, admin.Username)
		require.Equal(t, http.StatusCreated, code)

		got := res.Data.(*userData)
		require.Equal(t, domain.RoleModerator, got.User.Role)
	})

	t.Run("AdminChangesRole", func(t *testing.T) {
		body, err := json.Marshal(struct {
			Role string `json:"role"`
		}{Role: domain.RoleModerator})
		require.NoError(t, err)

		code, res := doRequest(t, http.MethodPatch, "/v1/users/"+regular.Username+"/", body, admin.Username)
		require.Equal(t, http.StatusOK, code)

		got := res.Data.(*userData)
		require.Equal(t, domain.RoleModerator, got.User.Role)
	})

	t.Run("NonAdminForbidden", func(t *testing.T) {
		code, res := doRequest(t, http.MethodGet, "/v1/users/", nil, regular.Username)
		require.Equal(t, http.StatusForbidden, code)
		require.Equal(t, middleware.ErrAdminRequired.Error(), res.Error)
	})

	t.Run("DeleteUserWithAccounts", func(t *testing.T) {
		owner := test.SeedUser(t, server.DB)
		test.SeedAccountWith1000RUBBalance(t, server.DB, owner.Username)

		code, res := doRequest(t, http.MethodDelete, "/v1/users/"+owner.Username+"/", nil, admin.Username)
		require.Equal(t, http.StatusConflict, code)
		require.Equal(t, domain.ErrUserHasAccounts.Error(), res.Error)
	})

	t.Run("DeleteUser", func(t *testing.T) {
		doomed := test.SeedUser(t, server.DB)

		code, res := doRequest(t, http.MethodDelete, "/v1/users/"+doomed.Username+"/", nil, admin.Username)
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, "user deleted", res.Status)
	})
}

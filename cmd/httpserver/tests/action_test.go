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
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/currencypkg"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/tokenpkg"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/web"
)

func TestDepositAPI(t *testing.T) {
	defer integrationtest.Flush(t, server.DB)

	user := test.SeedUser(t, server.DB)
	otherUser := test.SeedUser(t, server.DB)
	account := test.SeedAccountWith1000RUBBalance(t, server.DB, user.Username)

	tokenMaker, err := tokenpkg.NewJWTMaker(server.Config.TokenSymmetricKey)
	require.NoError(t, err)

	authType := middleware.AuthTypeBearer
	duration := server.Config.AccessTokenDuration

	type requestBody struct {
		AccountID int32  `json:"account_id"`
		Amount    string `json:"amount"`
	}

	testCases := []struct {
		name           string
		requestBody    requestBody
		setupAuth      func(t *testing.T, r *http.Request) error
		wantStatusCode int
		checkData      func(data any)
		wantError      string
	}{
		{
			name:        "OK",
			requestBody: requestBody{AccountID: account.ID, Amount: "250.50"},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, user.Username, duration)
			},
			wantStatusCode: http.StatusCreated,
			checkData: func(data any) {
				got, ok := data.(*domain.DepositTxResult)
				if !ok {
					t.Errorf(`res.Data=%#v, failed type conversion`, data)
				}

				want := domain.DepositTxResult{
					Action: domain.Action{
						AccountID: account.ID,
						Amount:    "250.50",
						Currency:  currencypkg.RUB,
						CreatedAt: time.Now().UTC().Truncate(time.Second),
					},
					Account: domain.Account{
						ID:        account.ID,
						Owner:     account.Owner,
						Balance:   "1250.50",
						Currency:  currencypkg.RUB,
						CreatedAt: account.CreatedAt,
					},
				}

				ignoreActionID := cmpopts.IgnoreFields(domain.Action{}, "ID")
				compareCreatedAt := cmpopts.EquateApproxTime(time.Second)

				if diff := cmp.Diff(want, *got, ignoreActionID, compareCreatedAt); diff != "" {
					t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name:        "RequiredAmount",
			requestBody: requestBody{AccountID: account.ID, Amount: ""},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, user.Username, duration)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Amount is required",
		},
		{
			name:        "InvalidAmount",
			requestBody: requestBody{AccountID: account.ID, Amount: "ten"},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, user.Username, duration)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      domain.ErrInvalidAmount.Error(),
		},
		{
			name:        "NegativeAmount",
			requestBody: requestBody{AccountID: account.ID, Amount: "-100"},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, user.Username, duration)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      domain.ErrNonPositiveAmount.Error(),
		},
		{
			name:        "TooManyDecimalPlaces",
			requestBody: requestBody{AccountID: account.ID, Amount: "10.001"},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, user.Username, duration)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      domain.ErrAmountPrecision.Error(),
		},
		{
			name:        "ForeignAccount",
			requestBody: requestBody{AccountID: account.ID, Amount: "100"},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, otherUser.Username, duration)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      domain.ErrAccountOwnerMismatch.Error(),
		},
		{
			name:        "AccountNotFound",
			requestBody: requestBody{AccountID: 100500, Amount: "100"},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, user.Username, duration)
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      domain.ErrAccountNotFound.Error(),
		},
		{
			name:        "NoAuthorization",
			requestBody: requestBody{AccountID: account.ID, Amount: "100"},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return nil
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      middleware.ErrAuthHeaderNotFound.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			body, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)

			req, err := http.NewRequest(http.MethodPost, "/v1/actions/", bytes.NewReader(body))
			require.NoError(t, err)

			require.NoError(t, tc.setupAuth(t, req))

			w := httptest.NewRecorder()
			server.ServeHTTP(w, req)

			require.Equal(t, tc.wantStatusCode, w.Code)

			res := web.Response{Data: &domain.DepositTxResult{}}
			require.NoError(t, json.NewDecoder(w.Body).Decode(&res))

			if tc.wantError != "" {
				require.Equal(t, tc.wantError, res.Error)
				return
			}

			tc.checkData(res.Data)
		})
	}
}

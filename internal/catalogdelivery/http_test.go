package catalogdelivery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/domain"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/currencypkg"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/errorspkg"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/randompkg"
)

func randomService() domain.Service {
	return domain.Service{
		ID:          int32(randompkg.Intn(100) + 1),
		Name:        randompkg.String(10),
		Description: randompkg.String(20),
		Price:       randompkg.MoneyAmountBetween(1, 1000),
		Currency:    currencypkg.RUB,
		CreatedAt:   time.Now().Truncate(time.Second).UTC(),
	}
}

func setupServer(t *testing.T) (*gin.Engine, *MockService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	catalogService := NewMockService(ctrl)
	catalogHandler := NewHandler(catalogService)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		require.NoError(t, v.RegisterValidation("currency", currencypkg.ValidCurrency))
	}

	server := gin.Default()
	server.POST("/services/", catalogHandler.Create)
	server.GET("/services/", catalogHandler.List)
	server.GET("/services/:id/", catalogHandler.Get)
	server.PATCH("/services/:id/", catalogHandler.Update)
	server.DELETE("/services/:id/", catalogHandler.Delete)

	return server, catalogService
}

func TestCreateServiceAPI(t *testing.T) {
	testService := randomService()

	server, catalogService := setupServer(t)
	url := "/services/"

	testCases := []struct {
		name          string
		requestBody   gin.H
		buildStubs    func(catalogService *MockService)
		checkResponse func(recorder *httptest.ResponseRecorder)
	}{
		{
			name:        "MissingName",
			requestBody: gin.H{"price": testService.Price},
			buildStubs: func(catalogService *MockService) {
				catalogService.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name: "UnsupportedCurrency",
			requestBody: gin.H{
				"name":     testService.Name,
				"price":    testService.Price,
				"currency": "GBP",
			},
			buildStubs: func(catalogService *MockService) {
				catalogService.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name: "PriceTooLow",
			requestBody: gin.H{
				"name":  testService.Name,
				"price": "0.50",
			},
			buildStubs: func(catalogService *MockService) {
				catalogService.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Service{}, domain.ErrServicePriceTooLow)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name: "DefaultCurrency",
			requestBody: gin.H{
				"name":        testService.Name,
				"description": testService.Description,
				"price":       testService.Price,
			},
			buildStubs: func(catalogService *MockService) {
				arg := domain.CreateServiceParams{
					Name:        testService.Name,
					Description: testService.Description,
					Price:       testService.Price,
					Currency:    currencypkg.RUB,
				}

				catalogService.EXPECT().
					Create(gomock.Any(), gomock.Eq(arg)).
					Times(1).
					Return(testService, nil)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusCreated, recorder.Code)
			},
		},
		{
			name: "OK",
			requestBody: gin.H{
				"name":        testService.Name,
				"description": testService.Description,
				"price":       testService.Price,
				"currency":    currencypkg.USD,
			},
			buildStubs: func(catalogService *MockService) {
				arg := domain.CreateServiceParams{
					Name:        testService.Name,
					Description: testService.Description,
					Price:       testService.Price,
					Currency:    currencypkg.USD,
				}

				catalogService.EXPECT().
					Create(gomock.Any(), gomock.Eq(arg)).
					Times(1).
					Return(testService, nil)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusCreated, recorder.Code)

				var res response
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
				require.Equal(t, testService, res.Data.Service)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			tc.buildStubs(catalogService)

			recorder := httptest.NewRecorder()

			body, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)

			req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
			require.NoError(t, err)

			server.ServeHTTP(recorder, req)
			tc.checkResponse(recorder)
		})
	}
}

func TestGetServiceAPI(t *testing.T) {
	testService := randomService()

	server, catalogService := setupServer(t)

	testCases := []struct {
		name          string
		url           string
		buildStubs    func(catalogService *MockService)
		checkResponse func(recorder *httptest.ResponseRecorder)
	}{
		{
			name: "InvalidID",
			url:  "/services/0/",
			buildStubs: func(catalogService *MockService) {
				catalogService.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name: "NotFound",
			url:  fmt.Sprintf("/services/%d/", testService.ID),
			buildStubs: func(catalogService *MockService) {
				catalogService.EXPECT().
					Get(gomock.Any(), gomock.Eq(testService.ID)).
					Times(1).
					Return(domain.Service{}, domain.ErrServiceNotFound)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusNotFound, recorder.Code)
			},
		},
		{
			name: "OK",
			url:  fmt.Sprintf("/services/%d/", testService.ID),
			buildStubs: func(catalogService *MockService) {
				catalogService.EXPECT().
					Get(gomock.Any(), gomock.Eq(testService.ID)).
					Times(1).
					Return(testService, nil)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)

				var res response
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
				require.Equal(t, testService, res.Data.Service)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			tc.buildStubs(catalogService)

			recorder := httptest.NewRecorder()

			req, err := http.NewRequest(http.MethodGet, tc.url, nil)
			require.NoError(t, err)

			server.ServeHTTP(recorder, req)
			tc.checkResponse(recorder)
		})
	}
}

func TestListServicesAPI(t *testing.T) {
	testService := randomService()

	server, catalogService := setupServer(t)

	t.Run("OK", func(t *testing.T) {
		catalogService.EXPECT().
			List(gomock.Any(), gomock.Eq(""), gomock.Eq(int32(20)), gomock.Eq(int32(1))).
			Times(1).
			Return([]domain.Service{testService}, nil)

		recorder := httptest.NewRecorder()

		req, err := http.NewRequest(http.MethodGet, "/services/", nil)
		require.NoError(t, err)

		server.ServeHTTP(recorder, req)
		require.Equal(t, http.StatusOK, recorder.Code)

		var res responseServices
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
		require.Len(t, res.Data.Services, 1)
	})

	t.Run("FilteredByCurrency", func(t *testing.T) {
		catalogService.EXPECT().
			List(gomock.Any(), gomock.Eq(currencypkg.EUR), gomock.Eq(int32(20)), gomock.Eq(int32(1))).
			Times(1).
			Return([]domain.Service{}, nil)

		recorder := httptest.NewRecorder()

		req, err := http.NewRequest(http.MethodGet, "/services/?currency=EUR", nil)
		require.NoError(t, err)

		server.ServeHTTP(recorder, req)
		require.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("InternalError", func(t *testing.T) {
		catalogService.EXPECT().
			List(gomock.Any(), gomock.Eq(""), gomock.Eq(int32(20)), gomock.Eq(int32(1))).
			Times(1).
			Return(nil, errorspkg.ErrInternal)

		recorder := httptest.NewRecorder()

		req, err := http.NewRequest(http.MethodGet, "/services/", nil)
		require.NoError(t, err)

		server.ServeHTTP(recorder, req)
		require.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
}

func TestUpdateServiceAPI(t *testing.T) {
	testService := randomService()

	server, catalogService := setupServer(t)
	url := fmt.Sprintf("/services/%d/", testService.ID)

	t.Run("NotFound", func(t *testing.T) {
		catalogService.EXPECT().
			Update(gomock.Any(), gomock.Eq(testService.ID), gomock.Any()).
			Times(1).
			Return(domain.Service{}, domain.ErrServiceNotFound)

		recorder := httptest.NewRecorder()

		body, err := json.Marshal(gin.H{"price": "200"})
		require.NoError(t, err)

		req, err := http.NewRequest(http.MethodPatch, url, bytes.NewReader(body))
		require.NoError(t, err)

		server.ServeHTTP(recorder, req)
		require.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("OK", func(t *testing.T) {
		arg := domain.UpdateServiceParams{Price: "200"}
		updated := testService
		updated.Price = "200"

		catalogService.EXPECT().
			Update(gomock.Any(), gomock.Eq(testService.ID), gomock.Eq(arg)).
			Times(1).
			Return(updated, nil)

		recorder := httptest.NewRecorder()

		body, err := json.Marshal(gin.H{"price": "200"})
		require.NoError(t, err)

		req, err := http.NewRequest(http.MethodPatch, url, bytes.NewReader(body))
		require.NoError(t, err)

		server.ServeHTTP(recorder, req)
		require.Equal(t, http.StatusOK, recorder.Code)

		var res response
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
		require.Equal(t, "200", res.Data.Service.Price)
	})
}

func TestDeleteServiceAPI(t *testing.T) {
	testService := randomService()

	server, catalogService := setupServer(t)
	url := fmt.Sprintf("/services/%d/", testService.ID)

	t.Run("NotFound", func(t *testing.T) {
		catalogService.EXPECT().
			Delete(gomock.Any(), gomock.Eq(testService.ID)).
			Times(1).
			Return(domain.ErrServiceNotFound)

		recorder := httptest.NewRecorder()

		req, err := http.NewRequest(http.MethodDelete, url, nil)
		require.NoError(t, err)

		server.ServeHTTP(recorder, req)
		require.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("OK", func(t *testing.T) {
		catalogService.EXPECT().
			Delete(gomock.Any(), gomock.Eq(testService.ID)).
			Times(1).
			Return(nil)

		recorder := httptest.NewRecorder()

		req, err := http.NewRequest(http.MethodDelete, url, nil)
		require.NoError(t, err)

		server.ServeHTTP(recorder, req)
		require.Equal(t, http.StatusOK, recorder.Code)
	})
}

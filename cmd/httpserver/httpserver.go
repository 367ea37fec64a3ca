// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/accountdelivery"
	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/accountrepo"
	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/accountservice"
	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/actiondelivery"
	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/actionrepo"
	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/actionservice"
	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/authdelivery"
	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/authrepo"
	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/authservice"
	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/catalogdelivery"
	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/catalogrepo"
	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/catalogservice"
	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/middleware"
	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/transactiondelivery"
	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/transactionrepo"
	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/transactionservice"
	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/transferdelivery"
	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/transferrepo"
	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/transferservice"
	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/userdelivery"
	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/userrepo"
	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/userservice"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/configpkg"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/currencypkg"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/mailpkg"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/tokenpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB         *sql.DB
	Engine     *gin.Engine
	Config     configpkg.Config
	TokenMaker tokenpkg.Maker
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	userRepo := userrepo.NewRepoPGS(conn)
	accountRepo := accountrepo.NewRepoPGS(conn)
	actionRepo := actionrepo.NewRepoPGS(conn)
	catalogRepo := catalogrepo.NewRepoPGS(conn)
	transactionRepo := transactionrepo.NewRepoPGS(conn)
	transferRepo := transferrepo.NewRepoPGS(conn)
	authRepo := authrepo.NewRepoPGS(conn)

	tokenMaker, err := tokenpkg.NewJWTMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	mailer := mailpkg.New(config.MailGatewayAddress, config.MailFrom)

	userService := userservice.New(userRepo)
	accountService := accountservice.New(accountRepo)
	actionService := actionservice.New(actionRepo, accountService)
	catalogService := catalogservice.New(catalogRepo)
	transactionService := transactionservice.New(transactionRepo, accountService, catalogService)
	transferService := transferservice.New(transferRepo, accountService)
	authService := authservice.New(authRepo, userService, mailer, tokenMaker,
		config.AccessTokenDuration, config.ConfirmationCodeDuration)

	userHandler := userdelivery.NewHandler(userService)
	accountHandler := accountdelivery.NewHandler(accountService)
	actionHandler := actiondelivery.NewHandler(actionService)
	catalogHandler := catalogdelivery.NewHandler(catalogService)
	transactionHandler := transactiondelivery.NewHandler(transactionService)
	transferHandler := transferdelivery.NewHandler(transferService)
	authHandler := authdelivery.NewHandler(authService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	v1 := engine.Group("/v1")

	v1.POST("/auth/email/", authHandler.SendCode)
	v1.POST("/auth/token/", authHandler.IssueToken)

	v1.GET("/services/", catalogHandler.List)
	v1.GET("/services/:id/", catalogHandler.Get)

	authRoutes := v1.Group("/").Use(middleware.AuthMiddleware(tokenMaker))

	authRoutes.POST("/accounts/", accountHandler.Create)
	authRoutes.GET("/accounts/", accountHandler.List)
	authRoutes.GET("/accounts/:id/", accountHandler.Get)

	authRoutes.POST("/actions/", actionHandler.Deposit)
	authRoutes.GET("/actions/", actionHandler.List)

	authRoutes.GET("/services/:id/purchase/", transactionHandler.Purchase)
	authRoutes.GET("/transactions/", transactionHandler.List)

	authRoutes.POST("/transfers/", transferHandler.Create)
	authRoutes.GET("/transfers/", transferHandler.List)
	authRoutes.GET("/transfers/to_my_account/", transferHandler.ListToMyAccount)

	authRoutes.GET("/users/me/", userHandler.Me)
	authRoutes.PATCH("/users/me/", userHandler.UpdateMe)

	adminRoutes := v1.Group("/").
		Use(middleware.AuthMiddleware(tokenMaker)).
		Use(middleware.RequireAdmin(userService))

	adminRoutes.POST("/services/", catalogHandler.Create)
	adminRoutes.PATCH("/services/:id/", catalogHandler.Update)
	adminRoutes.DELETE("/services/:id/", catalogHandler.Delete)

	adminRoutes.GET("/users/", userHandler.List)
	adminRoutes.POST("/users/", userHandler.Create)
	adminRoutes.GET("/users/:username/", userHandler.Get)
	adminRoutes.PATCH("/users/:username/", userHandler.Update)
	adminRoutes.DELETE("/users/:username/", userHandler.Delete)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("currency", currencypkg.ValidCurrency)
		if err != nil {
			return nil, errors.New("cannot register currency validator")
		}
	}

	server := &Server{
		DB:         conn,
		Engine:     engine,
		Config:     config,
		TokenMaker: tokenMaker,
	}

	return server, nil
}

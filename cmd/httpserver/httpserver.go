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

	"github.com/go-petr/rib-bank/internal/accountdelivery"
	"github.com/go-petr/rib-bank/internal/accountrepo"
	"github.com/go-petr/rib-bank/internal/accountservice"
	"github.com/go-petr/rib-bank/internal/dashboarddelivery"
	"github.com/go-petr/rib-bank/internal/dashboardservice"
	"github.com/go-petr/rib-bank/internal/entryrepo"
	"github.com/go-petr/rib-bank/internal/middleware"
	"github.com/go-petr/rib-bank/internal/transferdelivery"
	"github.com/go-petr/rib-bank/internal/transferrepo"
	"github.com/go-petr/rib-bank/internal/transferservice"
	"github.com/go-petr/rib-bank/internal/userdelivery"
	"github.com/go-petr/rib-bank/internal/userrepo"
	"github.com/go-petr/rib-bank/internal/userservice"
	"github.com/go-petr/rib-bank/pkg/configpkg"
	"github.com/go-petr/rib-bank/pkg/tokenpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	userRepo := userrepo.NewRepoPGS(conn)
	accountRepo := accountrepo.NewRepoPGS(conn)
	entryRepo := entryrepo.NewRepoPGS(conn)
	transferRepo := transferrepo.NewRepoPGS(conn)

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	userService := userservice.New(userRepo)
	accountService := accountservice.New(accountRepo, userRepo)
	transferService := transferservice.New(transferRepo, accountService, userService)
	dashboardService := dashboardservice.New(userRepo, accountRepo, entryRepo)

	userHandler := userdelivery.NewHandler(userService, tokenMaker, config)
	accountHandler := accountdelivery.NewHandler(accountService)
	transferHandler := transferdelivery.NewHandler(transferService)
	dashboardHandler := dashboarddelivery.NewHandler(dashboardService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/users", userHandler.Create)
	engine.POST("/users/login", userHandler.Login)

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(tokenMaker))

	authRoutes.POST("/accounts", accountHandler.Create)
	authRoutes.GET("/accounts/:rib", accountHandler.Get)
	authRoutes.GET("/accounts", accountHandler.List)
	authRoutes.PATCH("/accounts/:rib/status", accountHandler.SetStatus)

	authRoutes.POST("/transfers", transferHandler.Create)
	authRoutes.GET("/dashboard", dashboardHandler.Get)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("rib", accountdelivery.ValidRIB)
		if err != nil {
			return nil, errors.New("cannot register rib validator")
		}
	}

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}

// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-wallet/internal/accountdelivery"
	"github.com/go-petr/pet-wallet/internal/accountrepo"
	"github.com/go-petr/pet-wallet/internal/accountservice"
	"github.com/go-petr/pet-wallet/internal/correlator"
	"github.com/go-petr/pet-wallet/internal/entryrepo"
	"github.com/go-petr/pet-wallet/internal/fspiopdelivery"
	"github.com/go-petr/pet-wallet/internal/gateway"
	"github.com/go-petr/pet-wallet/internal/ilp"
	"github.com/go-petr/pet-wallet/internal/middleware"
	"github.com/go-petr/pet-wallet/internal/notify"
	"github.com/go-petr/pet-wallet/internal/otpdelivery"
	"github.com/go-petr/pet-wallet/internal/otprepo"
	"github.com/go-petr/pet-wallet/internal/otpservice"
	"github.com/go-petr/pet-wallet/internal/quoterepo"
	"github.com/go-petr/pet-wallet/internal/transferdelivery"
	"github.com/go-petr/pet-wallet/internal/transferrepo"
	"github.com/go-petr/pet-wallet/internal/transferservice"
	"github.com/go-petr/pet-wallet/internal/txrequestrepo"
	"github.com/go-petr/pet-wallet/pkg/configpkg"
	"github.com/go-petr/pet-wallet/pkg/tokenpkg"
	"github.com/go-petr/pet-wallet/pkg/validatorpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB         *sql.DB
	Engine     *gin.Engine
	Config     configpkg.Config
	TokenMaker tokenpkg.Maker

	scheme   *fspiopdelivery.Handler
	notifier transferservice.Notifier
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// Close waits for accepted scheme requests and releases the notification channel.
func (s *Server) Close() error {
	s.scheme.Wait()

	if p, ok := s.notifier.(*notify.RabbitMQPublisher); ok {
		return p.Close()
	}

	return nil
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	accountRepo := accountrepo.NewRepoPGS(conn)
	entryRepo := entryrepo.NewRepoPGS(conn)
	otpRepo := otprepo.NewRepoPGS(conn)
	txRequestRepo := txrequestrepo.NewRepoPGS(conn)
	quoteRepo := quoterepo.NewRepoPGS(conn)
	transferRepo := transferrepo.NewRepoPGS(conn)

	tokenMaker, err := tokenpkg.NewMaker(config.TokenType, config.TokenSymmetricKey)
	if err != nil {
		return nil, fmt.Errorf("cannot create token maker: %w", err)
	}

	builder, err := ilp.NewBuilder(config.FulfilmentSecret)
	if err != nil {
		return nil, fmt.Errorf("cannot create ilp builder: %w", err)
	}

	var notifier transferservice.Notifier = notify.LogNotifier{}

	if config.AMQPURL != "" {
		publisher, err := notify.NewRabbitMQPublisher(config.AMQPURL, config.AMQPExchange)
		if err != nil {
			return nil, fmt.Errorf("cannot connect to notification broker: %w", err)
		}

		notifier = publisher
	}

	corr := correlator.New()

	accountService := accountservice.New(accountRepo, entryRepo)
	otpService := otpservice.New(otpRepo, accountRepo, config.OTPTTL)
	transferService := transferservice.New(transferservice.Deps{
		TxRequests: txRequestRepo,
		Quotes:     quoteRepo,
		Transfers:  transferRepo,
		Accounts:   accountRepo,
		OTP:        otpService,
		Gateway:    gateway.New(config.SwitchURL, config.FSPID, config.GatewayTimeout),
		Notifier:   notifier,
		Correlator: corr,
		ILP:        builder,
	}, transferservice.Config{
		FSPID:           config.FSPID,
		CallbackTimeout: config.CallbackTimeout,
		QuoteExpiration: config.QuoteExpiration,
		InboundQuoteTTL: config.InboundQuoteTTL,
		QuoteFee:        config.QuoteFee,
	})

	accountHandler := accountdelivery.NewHandler(accountService)
	otpHandler := otpdelivery.NewHandler(otpService)
	transferHandler := transferdelivery.NewHandler(transferService)
	schemeHandler := fspiopdelivery.NewHandler(transferService, corr)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := validatorpkg.Register(v); err != nil {
			return nil, errors.New("cannot register scheme validators")
		}
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())
	engine.Use(middleware.Metrics())

	engine.GET("/health", func(gctx *gin.Context) {
		if err := conn.PingContext(gctx.Request.Context()); err != nil {
			gctx.Status(http.StatusServiceUnavailable)
			return
		}

		gctx.Status(http.StatusOK)
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	schemeHandler.Register(engine.Group("/", middleware.AllowedSources(config.AllowedFSPs)))

	authRoutes := engine.Group("/", middleware.AuthMiddleware(tokenMaker))
	accountHandler.Register(authRoutes)
	otpHandler.Register(authRoutes)
	transferHandler.Register(authRoutes)

	server := &Server{
		DB:         conn,
		Engine:     engine,
		Config:     config,
		TokenMaker: tokenMaker,
		scheme:     schemeHandler,
		notifier:   notifier,
	}

	return server, nil
}

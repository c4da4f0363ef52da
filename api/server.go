// Package api exposes the engine over a JSON HTTP gateway.
package api

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gin-gonic/gin"

	"github.com/nativeswap/nativeswap/app"
	"github.com/nativeswap/nativeswap/app/health"
	ammtypes "github.com/nativeswap/nativeswap/x/amm/types"
	emergencytypes "github.com/nativeswap/nativeswap/x/emergency/types"
)

// Engine is the part of the engine the gateway drives.
type Engine interface {
	Status(ctx context.Context) (app.Status, error)
	ListPools(ctx context.Context) ([]ammtypes.PoolInfo, error)
	PoolInfo(ctx context.Context, asset string) (ammtypes.PoolInfo, error)
	SpotPrice(ctx context.Context, asset string) (math.Int, error)
	LiquidityDepth(ctx context.Context, asset string) (math.Int, error)
	SwapEstimate(ctx context.Context, asset string, direction ammtypes.SwapDirection, amountIn math.Int) (ammtypes.SwapEstimate, error)
	ShareBalance(ctx context.Context, asset string, holder sdk.AccAddress) (math.Int, error)
	Balance(ctx context.Context, who sdk.AccAddress, denom string) (math.Int, error)

	AddLiquidity(ctx context.Context, caller sdk.AccAddress, asset string, desiredAsset, providedBase math.Int) (ammtypes.AddLiquidityResult, error)
	RemoveLiquidity(ctx context.Context, caller sdk.AccAddress, asset string, shares, minBaseOut, minAssetOut math.Int, deadline time.Time) (ammtypes.RemoveLiquidityResult, error)
	Swap(ctx context.Context, caller sdk.AccAddress, req ammtypes.SwapRequest) (ammtypes.SwapResult, error)
	TransferShares(ctx context.Context, caller sdk.AccAddress, asset string, to sdk.AccAddress, amount math.Int) error
	Pause(ctx context.Context, caller sdk.AccAddress) error
	Unpause(ctx context.Context, caller sdk.AccAddress) error
	SetFeeBps(ctx context.Context, caller sdk.AccAddress, bps uint64) error

	ProposeWithdrawal(ctx context.Context, caller sdk.AccAddress, asset string, recipient sdk.AccAddress, amount math.Int) (string, error)
	ApproveWithdrawal(ctx context.Context, caller sdk.AccAddress, id string) error
	ExecuteWithdrawal(ctx context.Context, caller sdk.AccAddress, id string) error
	Proposal(ctx context.Context, id string) (emergencytypes.Proposal, emergencytypes.ProposalStatus, error)
	ListProposals(ctx context.Context) ([]emergencytypes.Proposal, error)
	CheckInvariants(ctx context.Context) ([]string, error)
}

var _ Engine = (*app.App)(nil)

// Server represents the main API server
type Server struct {
	router      *gin.Engine
	engine      Engine
	config      *Config
	authService *AuthService
	health      *health.Checker
	logger      log.Logger
}

// Config holds server configuration
type Config struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	JWTSecret       []byte        `mapstructure:"-"`
	TokenTTL        time.Duration `mapstructure:"token-ttl"`
	CORSOrigins     []string      `mapstructure:"cors-origins"`
	RateLimitRPS    int           `mapstructure:"rate-limit-rps"`
	ReadTimeout     time.Duration `mapstructure:"read-timeout"`
	WriteTimeout    time.Duration `mapstructure:"write-timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown-timeout"`
	RequestTimeout  time.Duration `mapstructure:"request-timeout"`
	DefaultDeadline time.Duration `mapstructure:"default-deadline"`
}

// DefaultConfig returns default server configuration
func DefaultConfig() *Config {
	return &Config{
		Host:            "0.0.0.0",
		Port:            "5000",
		TokenTTL:        24 * time.Hour,
		CORSOrigins:     []string{"http://localhost:3000"},
		RateLimitRPS:    100,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		RequestTimeout:  30 * time.Second,
		DefaultDeadline: 20 * time.Minute,
	}
}

// NewServer creates a new API server instance
func NewServer(engine Engine, config *Config, logger log.Logger) (*Server, error) {
	if config == nil {
		config = DefaultConfig()
	}
	logger = logger.With("module", "api")

	if len(config.JWTSecret) == 0 {
		secret := make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("failed to generate JWT secret: %w", err)
		}
		config.JWTSecret = secret
		logger.Warn("JWT secret generated randomly; tokens will not survive a restart")
	}

	checker, err := health.NewChecker(logger, health.DefaultConfig(), engine)
	if err != nil {
		return nil, err
	}

	s := &Server{
		engine:      engine,
		config:      config,
		authService: NewAuthService(config.JWTSecret, config.TokenTTL),
		health:      checker,
		logger:      logger,
	}
	s.setupRouter()
	return s, nil
}

// setupRouter configures the Gin router with all routes and middleware
func (s *Server) setupRouter() {
	s.router = gin.New()

	// Global middleware - ORDER MATTERS!
	s.router.Use(gin.Recovery())
	s.router.Use(SecurityHeadersMiddleware())
	s.router.Use(RequestSizeLimitMiddleware(MaxRequestSize))
	s.router.Use(RequestIDMiddleware())
	s.router.Use(LoggerMiddleware(s.logger))
	s.router.Use(s.CORSMiddleware())
	s.router.Use(RateLimitMiddleware(s.config.RateLimitRPS))
	s.router.Use(TimeoutMiddleware(s.config.RequestTimeout))

	s.router.GET("/health", gin.WrapF(s.health.HandleHealth))
	s.router.GET("/health/ready", gin.WrapF(s.health.HandleReady))
	s.router.GET("/health/detailed", gin.WrapF(s.health.HandleDetailed))

	s.registerRoutes()
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Auth returns the token service.
func (s *Server) Auth() *AuthService {
	return s.authService
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:           fmt.Sprintf("%s:%s", s.config.Host, s.config.Port),
		Handler:        s.router,
		ReadTimeout:    s.config.ReadTimeout,
		WriteTimeout:   s.config.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting API server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("api server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

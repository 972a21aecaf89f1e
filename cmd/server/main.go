package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"syscall"

	route "github.com/bassista/go_grades/internal/api/route"
	appctx "github.com/bassista/go_grades/internal/app"
	"github.com/bassista/go_grades/internal/cache"
	"github.com/bassista/go_grades/internal/config"
	"github.com/bassista/go_grades/internal/fetcher"
	"github.com/bassista/go_grades/internal/logger"
	"github.com/bassista/go_grades/internal/metrics"
	"github.com/bassista/go_grades/internal/student"
	"github.com/gin-gonic/gin"

	"github.com/enrichman/httpgrace"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithComponent("main").Fatalf("configuration error: %v", err)
	}

	logLevel, err := logger.ConfigureLevel(cfg.Misc.LogLevel)
	if err != nil {
		logger.WithComponent("main").Warnf("invalid log level '%s', keeping '%s': %v", cfg.Misc.LogLevel, logLevel, err)
	}
	logger.WithComponent("main").Debugf("log level set to: %s", logLevel.String())
	logger.WithComponent("main").Infof("App will run on port: %d", cfg.Server.Port)
	logger.WithComponent("main").Infof("Grades source: %s", cfg.Source.URL)

	app, err := newApp(context.Background(), cfg)
	if err != nil {
		logger.WithComponent("main").Fatalf("cannot init app: %v", err)
	}
	defer app.Shutdown()

	if err := app.StartWatchers(); err != nil {
		logger.WithComponent("main").Fatalf("cannot start background refresh: %v", err)
	}

	gin.SetMode(cfg.Misc.GinMode)
	gin.DefaultWriter = logger.Logger.Writer()
	gin.DefaultErrorWriter = logger.Logger.Writer()

	r := route.SetupRoutes(app, logger.Logger)
	srv := createGraceHttpServer(app.BaseCtx, "main-server", app.Config.Server, r)

	if err := srv.ListenAndServe(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithComponent("main").Fatal(err)
	}
}

// newApp builds the grade source, cache, metrics and student repository and
// wires them into the application container.
func newApp(ctx context.Context, cfg *config.Config) (*appctx.App, error) {
	f, err := fetcher.New(cfg.Source.URL)
	if err != nil {
		return nil, fmt.Errorf("cannot init grades source: %w", err)
	}

	students, err := student.NewRepositoryFromConfig(ctx, cfg.Students)
	if err != nil {
		return nil, fmt.Errorf("cannot init student repository: %w", err)
	}

	app, err := appctx.New(cfg, f, cache.NewStore(), students, metrics.New())
	if err != nil {
		students.Close()
		return nil, err
	}
	return app, nil
}

func createGraceHttpServer(ctx context.Context, name string, serverConfig config.ServerConfig, r *gin.Engine) *httpgrace.Server {
	slogLogger := slog.New(slog.NewTextHandler(logger.Logger.Writer(), nil))

	srv := httpgrace.NewServer(r,
		httpgrace.WithTimeout(serverConfig.ShutDownTimeout),
		httpgrace.WithSignals(syscall.SIGTERM, syscall.SIGINT),
		httpgrace.WithLogger(slogLogger),
		httpgrace.WithBeforeShutdown(func() {
			logger.WithComponent("http").Infof("Shutting down %s server....", name)
		}),
		httpgrace.WithServerOptions(
			httpgrace.WithReadTimeout(serverConfig.ReadTimeout),
			httpgrace.WithWriteTimeout(serverConfig.WriteTimeout),
			httpgrace.WithIdleTimeout(serverConfig.IdleTimeout),
			func(srv *http.Server) {
				srv.BaseContext = func(_ net.Listener) context.Context {
					return ctx
				}
			},
			func(srv *http.Server) {
				srv.ErrorLog = log.New(logger.Logger.Writer(), fmt.Sprintf("[%s] ", name), log.LstdFlags)
			},
		),
	)
	return srv
}

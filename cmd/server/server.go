package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/hypedmc/dungeon-api/internal/engine"
	"github.com/hypedmc/dungeon-api/internal/orchestrators/actors"
	"github.com/hypedmc/dungeon-api/internal/orchestrators/boss"
	"github.com/hypedmc/dungeon-api/internal/orchestrators/session"
	"github.com/hypedmc/dungeon-api/internal/pkg/clock"
	"github.com/hypedmc/dungeon-api/internal/pkg/idgen"
	"github.com/hypedmc/dungeon-api/internal/redis"
	"github.com/hypedmc/dungeon-api/internal/repositories/profiles"
	"github.com/hypedmc/dungeon-api/internal/repositories/templates"
	"github.com/hypedmc/dungeon-api/internal/scheduler"
)

// serverConfig is loaded from the environment
type serverConfig struct {
	GRPCPort  int    `env:"GRPC_PORT" envDefault:"50051"`
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`

	TemplatesPath  string `env:"DUNGEON_TEMPLATES" envDefault:"dungeons.yml"`
	WatchTemplates bool   `env:"DUNGEON_TEMPLATES_WATCH" envDefault:"true"`

	TickInterval     time.Duration `env:"TICK_INTERVAL" envDefault:"50ms"`
	CountdownTicks   int           `env:"COUNTDOWN_TICKS" envDefault:"100"`
	MaxInstances     int           `env:"MAX_INSTANCES_PER_TEMPLATE" envDefault:"0"`
	ProvisionTimeout time.Duration `env:"PROVISION_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the orchestrator server",
	Long:  `Start the dungeon orchestrator: the tick scheduler, the template catalog, and the gRPC health endpoint.`,
	RunE:  runServer,
}

func runServer(cmd *cobra.Command, args []string) error {
	var cfg serverConfig
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("shutdown signal received")
		cancel()
	}()

	redisClient, err := redis.NewClient(cfg.RedisAddr, nil)
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	profileRepo := profiles.NewRedisRepository(redisClient)
	saver := profiles.NewAsyncSaver(profileRepo)

	templateRepo, err := templates.NewYAMLFileRepository(cfg.TemplatesPath)
	if err != nil {
		return fmt.Errorf("failed to load dungeon catalog: %w", err)
	}

	// in-memory engine bindings; an embedding host game replaces these
	// with its own world provider, spawner, and event feed
	world := engine.NewInMemoryWorld()
	spawner := engine.NewInMemorySpawner()
	events := engine.NewChanEventSource(1024)

	coordinator, err := actors.NewCoordinator(&actors.Config{Spawner: spawner})
	if err != nil {
		return fmt.Errorf("failed to create actor coordinator: %w", err)
	}

	bosses, err := boss.NewManager(&boss.Config{Spawner: spawner})
	if err != nil {
		return fmt.Errorf("failed to create boss manager: %w", err)
	}
	if err := bosses.Register("frozen_king", boss.FrozenKing(boss.FrozenKingDeps{
		Actors: coordinator,
	})); err != nil {
		return fmt.Errorf("failed to register boss: %w", err)
	}

	sessions, err := session.NewOrchestrator(&session.Config{
		World:                   world,
		Actors:                  coordinator,
		Bosses:                  bosses,
		Profiles:                profileRepo,
		Saver:                   saver,
		Templates:               templateRepo,
		IDGen:                   idgen.NewUUID("sess"),
		Clock:                   clock.New(),
		MaxInstancesPerTemplate: cfg.MaxInstances,
		CountdownTicks:          cfg.CountdownTicks,
		ProvisionTimeout:        cfg.ProvisionTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create session orchestrator: %w", err)
	}

	sched, err := scheduler.New(&scheduler.Config{
		Events:   events,
		Bosses:   bosses,
		Actors:   coordinator,
		Sessions: sessions,
		Interval: cfg.TickInterval,
	})
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	schedDone := make(chan struct{})
	go func() {
		defer close(schedDone)
		sched.Run(ctx)
	}()

	if cfg.WatchTemplates {
		watcher, err := templates.NewWatcher(cfg.TemplatesPath, templateRepo)
		if err != nil {
			return fmt.Errorf("failed to watch dungeon catalog: %w", err)
		}
		defer func() { _ = watcher.Close() }()
		go watcher.Run(ctx)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	reflection.Register(srv)

	errChan := make(chan error, 1)
	go func() {
		slog.Info("server started",
			"port", cfg.GRPCPort,
			"tick_interval", cfg.TickInterval,
			"catalog", cfg.TemplatesPath,
		)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		return shutdown(srv, sessions, schedDone, cfg.ShutdownTimeout)
	case err := <-errChan:
		cancel()
		return err
	}
}

// shutdown drains in order: the scheduler stops ticking, sessions are
// cancelled and profile saves flushed, then the gRPC server stops.
func shutdown(srv *grpc.Server, sessions session.Service, schedDone <-chan struct{}, timeout time.Duration) error {
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	select {
	case <-schedDone:
	case <-shutdownCtx.Done():
		slog.Warn("scheduler did not stop before deadline")
	}

	if err := sessions.Shutdown(shutdownCtx); err != nil {
		slog.Error("session shutdown incomplete", "error", err)
	}

	stopped := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(stopped)
	}()
	select {
	case <-shutdownCtx.Done():
		slog.Warn("graceful stop deadline exceeded, forcing")
		srv.Stop()
	case <-stopped:
	}

	slog.Info("server stopped")
	return nil
}

func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	slog.Log(ctx, slog.Level(level), msg, fields...)
}

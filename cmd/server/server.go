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

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/dx3rd-api/internal/config"
	"github.com/KirkDiggler/dx3rd-api/internal/handlers/dx3rd/v1alpha1"
	"github.com/KirkDiggler/dx3rd-api/internal/orchestrators/combat"
	"github.com/KirkDiggler/dx3rd-api/internal/orchestrators/overflow"
	"github.com/KirkDiggler/dx3rd-api/internal/orchestrators/sheet"
	"github.com/KirkDiggler/dx3rd-api/internal/orchestrators/timing"
	"github.com/KirkDiggler/dx3rd-api/internal/pkg/clock"
	"github.com/KirkDiggler/dx3rd-api/internal/pkg/idgen"
	"github.com/KirkDiggler/dx3rd-api/internal/redis"
	"github.com/KirkDiggler/dx3rd-api/internal/repositories/actor"
	overflowsession "github.com/KirkDiggler/dx3rd-api/internal/repositories/overflow_session"
	"github.com/KirkDiggler/dx3rd-api/internal/repositories/scene"
)

var (
	grpcPort  int
	redisAddr string
	logLevel  string
	envFile   string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long:  `Start the DX3rd rules gRPC server backed by Redis.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "port", 0, "gRPC server port (overrides DX3RD_GRPC_PORT)")
	serverCmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address (overrides DX3RD_REDIS_ADDR)")
	serverCmd.Flags().StringVar(&logLevel, "log-level", "", "log level (overrides DX3RD_LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file")
}

// loadConfig reads the environment and applies any flags the user set
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.GRPCPort = grpcPort
	}
	if flags.Changed("redis") {
		cfg.RedisAddr = redisAddr
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	return cfg, nil
}

// connectRedis opens the store and checks it answers
func connectRedis(ctx context.Context, cfg *config.Config) (redis.Client, error) {
	client, err := redis.NewClient(cfg.RedisAddr, nil)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := redis.Ping(pingCtx, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	return client, nil
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	redisClient, err := connectRedis(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
	}
	defer func() {
		_ = redisClient.Close()
	}()

	handler, closeHandler, err := buildHandler(redisClient, cfg)
	if err != nil {
		return err
	}
	defer closeHandler()

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	logger := interceptorLogger(slog.Default())
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(logger),
			grpc_recovery.UnaryServerInterceptor(grpc_recovery.WithRecoveryHandlerContext(recoverPanic)),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(logger),
			grpc_recovery.StreamServerInterceptor(grpc_recovery.WithRecoveryHandlerContext(recoverPanic)),
		),
	)

	v1alpha1.RegisterRulesServiceServer(srv, handler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	errChan := make(chan error, 1)
	go func() {
		slog.Info("gRPC server starting", "port", cfg.GRPCPort, "redis", cfg.RedisAddr)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down gRPC server")
		healthServer.Shutdown()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			slog.Warn("graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			slog.Info("server stopped gracefully")
		}

		return nil
	case err := <-errChan:
		return err
	}
}

// buildHandler wires repositories, orchestrators and the timing event bus.
// The returned func unsubscribes the sweeper from the bus.
func buildHandler(client redis.Client, cfg *config.Config) (*v1alpha1.Handler, func(), error) {
	actorRepo, err := actor.NewRedis(&actor.RedisConfig{Client: client})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create actor repository: %w", err)
	}
	sceneRepo, err := scene.NewRedis(&scene.RedisConfig{Client: client})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create scene repository: %w", err)
	}
	sessionRepo, err := overflowsession.NewRedisRepository(&overflowsession.Config{
		Client: client,
		Clock:  clock.New(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create selection session repository: %w", err)
	}

	sweeper, err := timing.NewOrchestrator(&timing.Config{
		ActorRepo: actorRepo,
		SceneRepo: sceneRepo,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create timing orchestrator: %w", err)
	}
	dispatcher, err := timing.NewDispatcher(&timing.DispatcherConfig{
		Bus:     events.NewBus(),
		Sweeper: sweeper,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create timing dispatcher: %w", err)
	}

	combatService, err := combat.NewOrchestrator(&combat.Config{ActorRepo: actorRepo})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create combat orchestrator: %w", err)
	}
	overflowService, err := overflow.NewOrchestrator(&overflow.Config{
		SessionRepo: sessionRepo,
		IDGenerator: idgen.NewUUID("sel"),
		DiceRoller:  dice.DefaultRoller,
		SessionTTL:  cfg.SelectionTTL,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create overflow orchestrator: %w", err)
	}
	sheetService, err := sheet.NewOrchestrator(&sheet.Config{ActorRepo: actorRepo})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create sheet orchestrator: %w", err)
	}

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		TimingService:   dispatcher,
		CombatService:   combatService,
		OverflowService: overflowService,
		SheetService:    sheetService,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create handler: %w", err)
	}

	return handler, dispatcher.Close, nil
}

// interceptorLogger adapts slog to the go-grpc-middleware logging interface
func interceptorLogger(l *slog.Logger) grpc_logging.Logger {
	return grpc_logging.LoggerFunc(func(ctx context.Context, lvl grpc_logging.Level, msg string, fields ...any) {
		l.Log(ctx, slog.Level(lvl), msg, fields...)
	})
}

func recoverPanic(ctx context.Context, p any) error {
	slog.ErrorContext(ctx, "recovered from panic", "panic", p)
	return status.Error(codes.Internal, "internal error")
}

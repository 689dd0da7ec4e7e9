package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/fractalshard/game-api/internal/clients/wallet"
	"github.com/fractalshard/game-api/internal/config"
	"github.com/fractalshard/game-api/internal/content"
	"github.com/fractalshard/game-api/internal/entities"
	v1alpha1 "github.com/fractalshard/game-api/internal/handlers/api/v1alpha1"
	battleorch "github.com/fractalshard/game-api/internal/orchestrators/battle"
	characterorch "github.com/fractalshard/game-api/internal/orchestrators/character"
	storyorch "github.com/fractalshard/game-api/internal/orchestrators/story"
	"github.com/fractalshard/game-api/internal/pkg/clock"
	"github.com/fractalshard/game-api/internal/pkg/idgen"
	"github.com/fractalshard/game-api/internal/pkg/scheduler"
	redisclient "github.com/fractalshard/game-api/internal/redis"
	battlerepo "github.com/fractalshard/game-api/internal/repositories/battle"
	characterrepo "github.com/fractalshard/game-api/internal/repositories/character"
	sessionrepo "github.com/fractalshard/game-api/internal/repositories/storysession"
)

var (
	configPath string
	httpPort   int
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP server",
	Long:  `Start the game API HTTP server with all configured services.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().StringVar(&configPath, "config", "", "path to config file (defaults apply when omitted)")
	serverCmd.Flags().IntVar(&httpPort, "port", 0, "HTTP port, overrides the config file")
}

func runServer(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("received shutdown signal, gracefully stopping")
		cancel()
	}()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if httpPort != 0 {
		cfg.Server.Port = httpPort
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	handler, err := buildHandler(cfg)
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down HTTP server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("graceful shutdown failed, closing", "error", err)
			return srv.Close()
		}

		slog.Info("server stopped gracefully")
		return nil
	case err := <-errChan:
		return err
	}
}

// buildHandler wires repositories, orchestrators, and clients from the
// loaded configuration.
func buildHandler(cfg *config.Config) (*v1alpha1.Handler, error) {
	redisClient, err := redisclient.NewClient(cfg.Redis.Addr, &redisclient.Options{
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, err
	}

	clk := clock.New()

	charRepo, err := characterrepo.NewRedis(&characterrepo.RedisConfig{Client: redisClient})
	if err != nil {
		return nil, err
	}

	sessRepo, err := sessionrepo.NewRedis(&sessionrepo.RedisConfig{
		Client: redisClient,
		Clock:  clk,
	})
	if err != nil {
		return nil, err
	}

	levelPolicy := characterorch.LevelPolicy(cfg.Game.LevelPolicy)
	if !levelPolicy.Valid() {
		return nil, fmt.Errorf("unknown level policy %q", cfg.Game.LevelPolicy)
	}

	charService, err := characterorch.New(&characterorch.Config{
		CharacterRepo: charRepo,
		IDGenerator:   idgen.NewUUID("char"),
		Clock:         clk,
		LevelPolicy:   levelPolicy,
	})
	if err != nil {
		return nil, err
	}

	graph, err := loadGraph(cfg)
	if err != nil {
		return nil, err
	}

	storyService, err := storyorch.New(&storyorch.Config{
		SessionRepo:      sessRepo,
		CharacterService: charService,
		Graph:            graph,
		IDGenerator:      idgen.NewUUID("session"),
		Clock:            clk,
		TypingInterval:   cfg.TypingInterval(),
		SessionTTL:       cfg.SessionTTL(),
	})
	if err != nil {
		return nil, err
	}

	enemies, err := content.DefaultEnemies()
	if err != nil {
		return nil, err
	}

	battleService, err := battleorch.New(&battleorch.Config{
		BattleRepo:       battlerepo.NewInMemory(),
		CharacterService: charService,
		Enemies:          enemies,
		Scheduler:        scheduler.New(),
		IDGenerator:      idgen.NewUUID("battle"),
		Clock:            clk,
		EnemyTurnDelay:   cfg.EnemyTurnDelay(),
	})
	if err != nil {
		return nil, err
	}

	return v1alpha1.NewHandler(&v1alpha1.Config{
		CharacterService: charService,
		StoryService:     storyService,
		BattleService:    battleService,
		WalletClient:     wallet.NewStub("0x5hard1ight"),
	})
}

func loadGraph(cfg *config.Config) (*entities.StoryGraph, error) {
	if cfg.Game.StoryPath != "" {
		return content.LoadStoryFile(cfg.Game.StoryPath)
	}
	return content.DefaultStory()
}

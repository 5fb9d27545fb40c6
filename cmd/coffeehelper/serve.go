package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/KelvinH2322/coffeehelper/internal/cli"
	"github.com/KelvinH2322/coffeehelper/internal/config"
	"github.com/KelvinH2322/coffeehelper/internal/logging"
	httpadapter "github.com/KelvinH2322/coffeehelper/pkg/adapters/http"
	"github.com/KelvinH2322/coffeehelper/pkg/adapters/memory"
	redisadapter "github.com/KelvinH2322/coffeehelper/pkg/adapters/redis"
	"github.com/KelvinH2322/coffeehelper/pkg/adapters/sqlite"
	"github.com/KelvinH2322/coffeehelper/pkg/assist"
	"github.com/KelvinH2322/coffeehelper/pkg/domain"
	"github.com/KelvinH2322/coffeehelper/pkg/persistence/middleware"
	"github.com/KelvinH2322/coffeehelper/pkg/ports"
	"github.com/KelvinH2322/coffeehelper/pkg/session"
	"github.com/KelvinH2322/coffeehelper/pkg/smartplug"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Exposes the troubleshooting engine as a JSON API: step administration, validation, guides and walkthrough sessions.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		dataDir, _ := cmd.Flags().GetString("data")

		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		if dataDir != "" {
			cfg.DataDir = dataDir
		}

		logger := logging.New(logging.ParseLevel(cfg.LogLevel))

		store, catalog, machines, err := cli.LoadData(cfg.DataDir)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		// Optional sqlite-backed catalog, seeded from the loaded guides.
		if cfg.Sqlite.Path != "" {
			db, err := sqlite.Open(cfg.Sqlite.Path)
			if err != nil {
				fmt.Printf("Error opening sqlite catalog: %v\n", err)
				os.Exit(1)
			}
			defer db.Close()
			if err := db.Seed(catalog.List(domain.GuideFilter{})); err != nil {
				fmt.Printf("Error seeding sqlite catalog: %v\n", err)
				os.Exit(1)
			}
			catalog = db
			logger.Info("guide catalog backed by sqlite", "path", cfg.Sqlite.Path)
		}

		var sessions ports.SessionStore = memory.NewSessionStore()
		if cfg.Redis.Enabled {
			rs := redisadapter.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
				redisadapter.WithTTL(time.Duration(cfg.Redis.TTLMinutes)*time.Minute))
			defer rs.Close()
			sessions = rs
			logger.Info("sessions backed by redis", "addr", cfg.Redis.Addr)
		}

		if cfg.Session.EncryptionKey != "" {
			key, err := base64.StdEncoding.DecodeString(cfg.Session.EncryptionKey)
			if err != nil || len(key) != 32 {
				fmt.Println("Error: session encryption key must be 32 bytes, base64-encoded")
				os.Exit(1)
			}
			sessions = middleware.Chain(sessions,
				middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key}))
			logger.Info("session state encryption enabled")
		}

		manager := session.NewManager(store, sessions, session.WithLogger(logger))

		opts := []httpadapter.Option{
			httpadapter.WithLogger(logger),
			httpadapter.WithMachines(machines),
			httpadapter.WithSmartPlugs(smartplug.NewStub()),
		}
		if cfg.OpenAI.ApiKey != "" {
			assistOpts := []assist.Option{assist.WithLogger(logger)}
			if cfg.OpenAI.Model != "" {
				assistOpts = append(assistOpts, assist.WithModel(cfg.OpenAI.Model))
			}
			opts = append(opts, httpadapter.WithAssistant(
				assist.NewOpenAI(cfg.OpenAI.ApiKey, catalog, assistOpts...)))
			logger.Info("assistant enabled")
		}

		server := httpadapter.NewServer(store, catalog, manager, opts...)

		srv := &http.Server{
			Addr:    cfg.Addr(),
			Handler: server.Handler(),
		}

		serverErrors := make(chan error, 1)
		go func() {
			fmt.Printf("Starting CoffeeHelper server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("CoffeeHelper server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("config", "c", "", "Path to a YAML config file (defaults to env-only config)")
}

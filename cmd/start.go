package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"artifact-host/core/config"
	"artifact-host/core/database"
	"artifact-host/core/loader"
	"artifact-host/core/logger"
	"artifact-host/core/middleware/auth"
	"artifact-host/core/middleware/rayid"
	"artifact-host/core/mre/memory"
	"artifact-host/core/net/ws"
	"artifact-host/core/storage"

	"artifact-host/feature/contentpack"
	"artifact-host/feature/journal"
	"artifact-host/feature/session"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "artifact-host/docs/swagger"
)

var (
	cpackFlag       string
	contentPackFlag string
)

// @title Artifact Host API
// @version 1.0
// @description Admin API for a hosted content-pack session.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the session host",
	Long: `Loads the content pack, starts the session, the websocket relay and the admin API.
The pack id is taken from --cpack, then --content-pack, then SESSION_CONTENT_PACK.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database (Optional)
		sessionID := uuid.NewString()
		var db *gorm.DB
		if conn, err := database.Connect(cfg.Database); err != nil {
			if !errors.Is(err, database.ErrDisabled) {
				logg.Warn("Optional database connection failed", zap.Error(err))
			}
		} else {
			db = conn
			logg.Info("Connected to journal database", zap.String("driver", cfg.Database.Driver))
		}
		j := journal.New(db, sessionID)
		if err := j.Migrate(); err != nil {
			logg.Warn("Journal migration failed, journal disabled", zap.Error(err))
			j = nil
		}

		// 4. Initialize Storage
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}

		// 5. Content packs and runtime
		fetcher, err := contentpack.NewFetcher(cfg.ContentPack, store, cfg.Storage.Bucket)
		if err != nil {
			logg.Fatal("Failed to create content pack fetcher", zap.Error(err))
		}
		packs := contentpack.NewLoader(fetcher, cfg.ContentPack.CacheTTL())

		hub := ws.NewHub(logg)
		rt := memory.New(memory.NewStorageModelSource(store, cfg.Storage.Bucket, cfg.Storage.ModelPrefix), logg)
		rt.SetPublisher(hub)

		controller := session.NewController(rt, packs, j, cfg.Session, logg)
		params := map[string]string{
			contentpack.ParamShort: cpackFlag,
			contentpack.ParamLong:  contentPackFlag,
		}
		if err := controller.Start(cmd.Context(), params); err != nil {
			logg.Fatal("Failed to start session", zap.Error(err))
		}

		// 6. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		mgr := loader.NewManager()
		mgr.Register(session.NewFeature(controller))
		mgr.Register(contentpack.NewFeature(contentpack.NewService(packs, store, cfg.Storage.Bucket, cfg.Storage.ModelPrefix, logg)))

		// RayID must be first to trace everything
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		loaded, err := mgr.LoadAll(app)
		if err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		// 7. Websocket relay
		mux := http.NewServeMux()
		mux.Handle("/session", ws.NewHandler(hub, rt, controller, logg))
		relay := &http.Server{
			Addr:              cfg.Server.RelayAddr(),
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// 8. Start Servers
		go func() {
			logg.Info("Starting admin server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(cfg.Server.AdminAddr()); err != nil {
				logg.Fatal("Admin server failed to start", zap.Error(err))
			}
		}()
		go func() {
			logg.Info("Starting session relay", zap.String("port", cfg.Server.RelayPort))
			if err := relay.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logg.Fatal("Session relay failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		hub.Close()
		_ = relay.Shutdown(ctx)
		_ = app.ShutdownWithContext(ctx)
		if err := controller.Close(); err != nil {
			logg.Warn("Session teardown failed", zap.Error(err))
		}
	},
}

func init() {
	startCmd.Flags().StringVar(&cpackFlag, "cpack", "", "content pack id")
	startCmd.Flags().StringVar(&contentPackFlag, "content-pack", "", "content pack id (used when --cpack is absent)")
	RootCmd.AddCommand(startCmd)
}

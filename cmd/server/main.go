package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/urfave/cli/v2"

	"portfolio-site/internal/assets"
	"portfolio-site/internal/config"
	"portfolio-site/internal/database"
	"portfolio-site/internal/handlers"
	"portfolio-site/internal/logger"
	"portfolio-site/internal/middleware"
	"portfolio-site/internal/models"
	"portfolio-site/internal/repository"
	"portfolio-site/internal/router"
	"portfolio-site/internal/services"
	"portfolio-site/internal/session"
	"portfolio-site/internal/views"
	"portfolio-site/internal/worker"
	"portfolio-site/web"
)

func main() {
	var logCloser interface{ Close() error }

	app := &cli.App{
		Name:  "portfolio",
		Usage: "Personal portfolio site with an AI assistant",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "Also write logs to this file, rotated by size",
				EnvVars: []string{"LOG_FILE"},
			},
		},
		Before: func(c *cli.Context) error {
			logCloser = logger.Setup(logger.ParseLevel(c.String("log-level")), c.String("log-file"))
			return nil
		},
		After: func(c *cli.Context) error {
			if logCloser != nil {
				return logCloser.Close()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the web server",
				Action: runServe,
			},
			{
				Name:   "check-assets",
				Usage:  "Report stack icons missing from the asset directory",
				Action: runCheckAssets,
			},
			{
				Name:  "contacts",
				Usage: "Manage stored contact form messages",
				Subcommands: []*cli.Command{
					{
						Name:  "list",
						Usage: "Print the most recent messages",
						Flags: []cli.Flag{
							&cli.Uint64Flag{
								Name:    "limit",
								Aliases: []string{"n"},
								Value:   20,
								Usage:   "Number of messages to show",
							},
						},
						Action: runContactsList,
					},
					{
						Name:      "delete",
						Usage:     "Delete a message by id",
						ArgsUsage: "<id>",
						Action:    runContactsDelete,
					},
				},
			},
		},
		Action: runServe,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func runServe(c *cli.Context) error {
	slog.Info("starting portfolio site")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	if cfg.UsesDefaultSecret() {
		if cfg.IsProduction() {
			return errors.New("SECRET_KEY must be set in production")
		}
		slog.Warn("SECRET_KEY not set, signing sessions with the development key")
	}
	if cfg.OpenAIAPIKey == "" {
		slog.Warn("OPENAI_API_KEY not set, the assistant will answer with a configuration error")
	}

	// ──── Step 2: Load Stack Icons and Blog Posts ────
	stack := assets.Load(os.DirFS(cfg.AssetDir), assets.DefaultManifest)
	slog.Info("stack icons loaded", "count", len(stack), "dir", cfg.AssetDir)

	blog, err := services.NewBlog(web.BlogPosts)
	if err != nil {
		return fmt.Errorf("failed to load blog posts: %w", err)
	}
	slog.Info("blog posts loaded", "count", len(blog.List()))

	renderer, err := views.New(web.Templates)
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}

	biography, err := services.LoadBiography(cfg.BiographyFile)
	if err != nil {
		return err
	}

	// ──── Step 3: Session Store (Redis when configured) ────
	var store session.Store = session.NewMemoryStore()
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("redis connection failed: %w", err)
		}
		defer redisClient.Close()
		store = session.NewRedisStore(redisClient)
		slog.Info("sessions stored in redis")
	} else {
		slog.Info("sessions stored in memory")
	}

	sessions, err := middleware.NewSessions(cfg.SecretKey, store, cfg.SessionTTL, cfg.IsProduction())
	if err != nil {
		return err
	}

	// ──── Step 4: Contact Storage (PostgreSQL when configured) ────
	var contactStore services.ContactStore
	if cfg.DatabaseURL != "" {
		pool, err := openDatabase(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()
		contactStore = repository.NewContactRepo(pool)
		slog.Info("contact form enabled")
	} else {
		slog.Warn("DATABASE_URL not set, contact form disabled")
	}

	emailService := services.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.ContactEmail)
	notifications := worker.NewPool(emailService, 2, 64)
	notifications.Start()
	defer notifications.Stop()
	contactService := services.NewContactService(contactStore, notifications)

	// ──── Step 5: Assistant ────
	assistantService := services.NewAssistantService(services.AssistantOptions{
		APIKey:    cfg.OpenAIAPIKey,
		BaseURL:   cfg.OpenAIBaseURL,
		Model:     cfg.OpenAIModel,
		Biography: biography,
	})
	assistantLimiter := middleware.NewRateLimiter(cfg.AssistantRateLimit, time.Minute)
	defer assistantLimiter.Stop()

	// ──── Step 6: Start HTTP Server ────
	r := router.New(
		sessions,
		assistantLimiter,
		handlers.NewPageHandler(renderer, stack, blog, contactService),
		handlers.NewAssistantHandler(assistantService),
		handlers.NewThemeHandler(sessions),
		http.FS(web.StaticFiles),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      router.RequestTimeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return runServer(c.Context, server)
}

func openDatabase(databaseURL string) (*pgxpool.Pool, error) {
	pool, err := database.NewPostgresPool(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres connection failed: %w", err)
	}
	if err := database.RunMigrations(pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database migration failed: %w", err)
	}
	return pool, nil
}

// runServer serves until SIGINT/SIGTERM, then drains in-flight requests.
func runServer(ctx context.Context, server *http.Server) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server ready", "addr", "http://localhost"+server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func runCheckAssets(c *cli.Context) error {
	cfg := config.Load()

	missing := assets.Missing(os.DirFS(cfg.AssetDir), assets.DefaultManifest)
	for _, m := range missing {
		slog.Warn("stack icon missing", "name", m.Name, "path", m.Path, "dir", cfg.AssetDir)
	}
	if len(missing) > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d stack icons missing", len(missing), len(assets.DefaultManifest)), 1)
	}

	slog.Info("all stack icons present", "count", len(assets.DefaultManifest), "dir", cfg.AssetDir)
	return nil
}

func openContactRepo() (*repository.ContactRepo, func(), error) {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		return nil, nil, cli.Exit("DATABASE_URL is not set", 1)
	}
	pool, err := openDatabase(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	return repository.NewContactRepo(pool), pool.Close, nil
}

func runContactsList(c *cli.Context) error {
	repo, closeDB, err := openContactRepo()
	if err != nil {
		return err
	}
	defer closeDB()

	return listContacts(c.Context, repo, c.Uint64("limit"), c.App.Writer)
}

func runContactsDelete(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: portfolio contacts delete <id>", 2)
	}
	id, err := uuid.Parse(c.Args().First())
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid id %q: %v", c.Args().First(), err), 2)
	}

	repo, closeDB, err := openContactRepo()
	if err != nil {
		return err
	}
	defer closeDB()

	if err := repo.Delete(c.Context, id); err != nil {
		return fmt.Errorf("failed to delete contact message: %w", err)
	}
	slog.Info("contact message deleted", "id", id)
	return nil
}

type contactLister interface {
	ListRecent(ctx context.Context, limit uint64) ([]*models.ContactMessage, error)
}

// listContacts writes one tab-separated line per message, newest first.
func listContacts(ctx context.Context, repo contactLister, limit uint64, w io.Writer) error {
	messages, err := repo.ListRecent(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list contact messages: %w", err)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tRECEIVED\tNAME\tEMAIL\tMESSAGE")
	for _, m := range messages {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			m.ID,
			m.CreatedAt.UTC().Format(time.RFC3339),
			m.Name,
			m.Email,
			preview(m.Message, 60),
		)
	}
	return tw.Flush()
}

// preview flattens msg onto one line and cuts it to n runes.
func preview(msg string, n int) string {
	msg = strings.Join(strings.Fields(msg), " ")
	if utf8.RuneCountInString(msg) <= n {
		return msg
	}
	return string([]rune(msg)[:n-1]) + "…"
}

package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/redis/go-redis/v9"

	"github.com/portfolio-website/portfolio-server/config"
	httpapi "github.com/portfolio-website/portfolio-server/internal/api/http"
	"github.com/portfolio-website/portfolio-server/internal/assets"
	"github.com/portfolio-website/portfolio-server/internal/bootstrap"
	"github.com/portfolio-website/portfolio-server/internal/contact/mailer"
	"github.com/portfolio-website/portfolio-server/internal/contact/ratelimit"
	contactservice "github.com/portfolio-website/portfolio-server/internal/contact/service"
	"github.com/portfolio-website/portfolio-server/internal/logging"
	"github.com/portfolio-website/portfolio-server/internal/markdown"
	"github.com/portfolio-website/portfolio-server/internal/metrics"
	"github.com/portfolio-website/portfolio-server/internal/projects/repository"
	projectservice "github.com/portfolio-website/portfolio-server/internal/projects/service"
)

const serviceName = "portfolio-server"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}

	logging.Setup(os.Stderr, cfg.App.LogLevel, cfg.App.Environment)
	bootstrap.SetGinMode(cfg.App.Environment, cfg.Server.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	checks := map[string]httpapi.Check{}

	// project store
	var store projectservice.ProjectStore
	var fsClient *firestore.Client
	if fsClient, err = bootstrap.OpenFirestore(ctx, cfg.Firestore); err != nil {
		slog.Warn("firestore unavailable, project pages will show a notice", "error", err)
		unavailable := repository.UnavailableRepository{Cause: err}
		store = unavailable
		checks["firestore"] = unavailable.Ping
	} else {
		repo := repository.NewProjectRepository(fsClient, cfg.Firestore.Collection, cfg.Firestore.Timeout)
		store = repo
		checks["firestore"] = repo.Ping
	}

	resolver := assets.NewResolver(cfg.Assets.BaseURL, cfg.Assets.Bucket)
	projects := projectservice.NewProjectService(store, markdown.NewRenderer(), resolver)

	// contact relay
	var limiter contactservice.Limiter
	var rdb *redis.Client
	if cfg.Redis.URL != "" {
		if rdb, err = bootstrap.OpenRedis(ctx, cfg.Redis.URL); err != nil {
			slog.Warn("redis unavailable, using in-memory rate limiter", "error", err)
		}
	}
	if rdb != nil {
		limiter = ratelimit.NewRedisLimiter(rdb, cfg.Contact.RateLimit, cfg.Contact.RateWindow)
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	} else {
		limiter = ratelimit.NewMemoryLimiter(cfg.Contact.RateLimit, cfg.Contact.RateWindow)
		checks["redis"] = nil
	}

	var sender contactservice.Sender
	if cfg.Mail.Configured() {
		smtp, err := mailer.NewSMTPSender(mailer.Options{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			UseTLS:   cfg.Mail.UseTLS,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			Timeout:  cfg.Mail.Timeout,
		})
		if err != nil {
			slog.Warn("mail sender could not be created, contact form disabled", "error", err)
		} else {
			sender = smtp
		}
	} else {
		slog.Warn("mail settings incomplete, contact form disabled")
	}

	relay := contactservice.NewRelayService(contactservice.RelayOptions{
		Sender:    sender,
		Limiter:   limiter,
		From:      cfg.Mail.Sender,
		Recipient: cfg.Mail.Recipient,
		Observe:   m.ContactOutcome,
	})

	secret := cfg.Session.Secret
	if secret == "" {
		secret = ephemeralSecret()
		slog.Warn("SECRET_KEY not set, sessions will not survive a restart")
	}

	router, err := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
		Production:     cfg.App.IsProduction(),
		SessionSecret:  secret,
		TrustedProxies: cfg.Server.TrustedProxies,
		CORSOrigins:    cfg.Server.CORSAllowedOrigins,
		ImageOrigin:    origin(resolver.Root()),
		Projects:       projects,
		Contact:        relay,
		Metrics:        m,
		Checks:         checks,
	})
	if err != nil {
		slog.Error("router", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("listening", "addr", srv.Addr, "env", cfg.App.Environment, "version", cfg.App.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "error", err)
	}

	if fsClient != nil {
		_ = fsClient.Close()
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}

func ephemeralSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}

// origin reduces an asset root such as https://host/bucket to https://host.
func origin(root string) string {
	u, err := url.Parse(root)
	if err != nil || u.Host == "" {
		return root
	}
	return u.Scheme + "://" + u.Host
}

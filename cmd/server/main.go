// Package main initializes and starts the studio API server, setting up
// configuration, logging, document storage, services, handlers, the upload
// sweeper and optional TLS.
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/fusedlens/studio/internal/auth"
	"github.com/fusedlens/studio/internal/certgen"
	"github.com/fusedlens/studio/internal/config"
	"github.com/fusedlens/studio/internal/db"
	"github.com/fusedlens/studio/internal/logger"
	"github.com/fusedlens/studio/internal/repository"
	"github.com/fusedlens/studio/internal/server/handler/http"
	"github.com/fusedlens/studio/internal/service"
	"github.com/fusedlens/studio/internal/store"
	"github.com/fusedlens/studio/internal/uploads"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line, config file and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmpOr(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmpOr(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	zapLogger := log.Log

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open the document store: PostgreSQL when a DSN is configured, JSON
	// files otherwise.
	docStore, closeStore, err := openStore(ctx, options)
	if err != nil {
		zapLogger.Fatal("cannot init document store", zap.Error(err))
	}
	defer closeStore()
	docs := repository.New(store.Instrumented(docStore))

	secret := options.JWTSecret
	if secret == "" {
		secret = randomSecret()
		zapLogger.Warn("JWT_SECRET not set; using a random secret, tokens will not survive a restart")
	}
	tokens := auth.NewTokenManager(secret, options.TokenTTL.Duration)

	// Initialize business-logic services.
	authService := service.NewAuthService(docs.Admin, tokens)
	if err := authService.Bootstrap(ctx, options.AdminUsername, options.AdminPassword); err != nil {
		zapLogger.Fatal("cannot init admin account", zap.Error(err))
	}
	contentService := service.NewContentService(docs.Content)
	photoService := service.NewPhotoService(docs.Photos)
	collectionService := service.NewCollectionService(docs.Collections)
	contactService := service.NewContactService(docs.Contacts)
	commentService := service.NewCommentService(docs.Comments)

	uploadDir, err := uploads.New(options.UploadDir, options.MaxUploadBytes)
	if err != nil {
		zapLogger.Fatal("cannot init upload directory", zap.Error(err))
	}

	// Remove uploads no document references any more.
	uploads.StartSweeper(ctx, uploadDir,
		options.SweepInterval.Duration,
		options.SweepRetention.Duration,
		service.ReferencedUploads(docs),
		zapLogger,
	)

	// Create HTTP handlers for every resource.
	handlers := http.Handlers{
		Auth:        &http.AuthHandler{AuthService: authService, Log: zapLogger},
		Content:     &http.ContentHandler{ContentService: contentService, Log: zapLogger},
		Photos:      &http.PhotoHandler{PhotoService: photoService, Uploads: uploadDir, Log: zapLogger},
		Collections: &http.CollectionHandler{CollectionService: collectionService, Log: zapLogger},
		Contact:     &http.ContactHandler{ContactService: contactService, Log: zapLogger},
		Comments:    &http.CommentHandler{CommentService: commentService, Log: zapLogger},
	}

	// Build the router with middleware and routes.
	router := http.NewRouter(handlers, http.RouterOptions{
		Tokens:      authService,
		Uploads:     uploadDir.Handler(),
		CORSOrigins: options.CORSOrigins,
		RateLimit:   options.RateLimit,
		TrustProxy:  options.TrustProxy,
	}, zapLogger)

	server := &nethttp.Server{
		Addr:              options.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Minute,
		WriteTimeout:      time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	if options.TLSEnabled() {
		cert, err := certgen.LoadCertificate(options.TLSCert)
		if err != nil {
			zapLogger.Fatal("failed to load TLS certificate", zap.Error(err))
		}
		if left := time.Until(cert.NotAfter); left < 30*24*time.Hour {
			zapLogger.Warn("TLS certificate expires soon",
				zap.Time("not_after", cert.NotAfter), zap.Duration("left", left))
		}
	}

	errCh := make(chan error, 1)
	go func() {
		if options.TLSEnabled() {
			zapLogger.Info("starting HTTPS server", zap.String("addr", options.Addr))
			errCh <- server.ListenAndServeTLS(options.TLSCert, options.TLSKey)
			return
		}
		zapLogger.Info("starting HTTP server", zap.String("addr", options.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, nethttp.ErrServerClosed) {
			zapLogger.Fatal("server failed", zap.Error(err))
		}
	case <-ctx.Done():
		zapLogger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zapLogger.Error("graceful shutdown failed", zap.Error(err))
		}
	}
}

func openStore(ctx context.Context, options *config.Options) (store.Store, func(), error) {
	if options.DatabaseDSN != "" {
		pg, err := db.InitPostgres(ctx, options.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		return store.NewPostgresStore(pg), func() { _ = pg.Close() }, nil
	}
	fs, err := store.NewFileStore(options.DataDir)
	if err != nil {
		return nil, nil, err
	}
	return fs, func() {}, nil
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}

// cmpOr returns the first of its arguments that is not the zero value
// (equivalent to cmp.Or from Go 1.22).
func cmpOr[T comparable](vals ...T) T {
	var zero T
	for _, v := range vals {
		if v != zero {
			return v
		}
	}
	return zero
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"convenience-store/internal/config"
	"convenience-store/internal/database"
	"convenience-store/internal/handlers"
	"convenience-store/internal/middleware"
	"convenience-store/internal/repository"
	"convenience-store/internal/service"
	"convenience-store/internal/web"
)

func main() {
	if err := config.Load(); err != nil {
		bootLg, _ := zap.NewProduction()
		bootLg.Fatal("Load config", zap.Error(err))
	}
	cfg := config.AppEnv

	lg, err := newLogger(cfg.LogDev)
	if err != nil {
		panic(err)
	}
	defer func() { _ = lg.Sync() }()
	zap.ReplaceGlobals(lg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg); err != nil {
		lg.Fatal("Server stopped", zap.Error(err))
	}
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

type timeoutSetter interface {
	SetTimeout(d time.Duration)
}

func run(ctx context.Context, cfg config.Config, lg *zap.Logger) error {
	store, err := database.Open(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		return errors.Wrap(err, "open database")
	}
	lg.Info("MongoDB connected", zap.String("db", store.Database().Name()))

	if err := database.EnsureIndexes(ctx, store.Database(), lg); err != nil {
		lg.Warn("Index setup incomplete", zap.Error(err))
	}
	if cfg.SeedData {
		if err := database.Seed(ctx, store.Database(), lg); err != nil {
			lg.Warn("Seeding failed", zap.Error(err))
		}
	}

	var (
		products  = repository.NewProductRepository(store)
		customers = repository.NewCustomerRepository(store)
		admins    = repository.NewAdminRepository(store)
		sessions  = repository.NewSessionRepository(store)
		carts     = repository.NewCartRepository(store)
		orders    = repository.NewOrderRepository(store)
		invoices  = repository.NewInvoiceRepository(store)
		payments  = repository.NewPaymentRepository(store)
		receipts  = repository.NewReceiptRepository(store)
	)
	for _, r := range []timeoutSetter{products, customers, admins, sessions, carts, orders, invoices, payments, receipts} {
		r.SetTimeout(cfg.RequestTimeout)
	}

	var (
		authSvc      = service.NewAuthService(customers, admins, sessions, cfg.JWTSecret, cfg.SessionTTL, lg)
		inventorySvc = service.NewInventoryService(products, lg)
		invoiceSvc   = service.NewInvoiceService(invoices, lg)
		orderSvc     = service.NewOrderService(orders, carts, invoiceSvc, inventorySvc, lg)
		paymentSvc   = service.NewPaymentService(payments, receipts, invoiceSvc, lg)
	)

	if !cfg.LogDev {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(lg.Named("http")), middleware.Recovery())

	handlers.RegisterRoutes(r, handlers.Services{
		Auth:      authSvc,
		Catalogue: service.NewCatalogueService(products, lg),
		Cart:      service.NewCartService(carts, products, lg),
		Orders:    orderSvc,
		Invoices:  invoiceSvc,
		Payments:  paymentSvc,
		Admin:     service.NewAdminService(products, orderSvc, invoiceSvc, inventorySvc, lg),
		DB:        store,
	}, handlers.Frontend{
		Index:  web.Index(),
		Static: web.Static(),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lg.Info("Listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "listen")
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		lg.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "shutdown http")
		}
		return store.Close(shutdownCtx)
	})
	return g.Wait()
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/httpserver"
	"storefront/internal/orderclient"
	cartlinerepo "storefront/internal/repository/cartline"
	customerrepo "storefront/internal/repository/customer"
	productrepo "storefront/internal/repository/product"
	settingsrepo "storefront/internal/repository/settings"
	tokenrepo "storefront/internal/repository/token"
	cartsvc "storefront/internal/service/cart"
	checkoutsvc "storefront/internal/service/checkout"
	customersvc "storefront/internal/service/customer"
	guestsvc "storefront/internal/service/guest"
	reconcilesvc "storefront/internal/service/reconcile"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	cache, err := db.ConnectCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Fatalf("connect to cache: %v", err)
	}
	defer cache.Close()

	productRepo := productrepo.NewPostgres(dbpool, logger)
	customerRepo := customerrepo.NewPostgres(dbpool, logger)
	tokenRepo := tokenrepo.NewPostgres(dbpool)
	settingsRepo := settingsrepo.NewPostgres(dbpool)
	guestLines := cartlinerepo.NewRedis(cache, cfg.GuestCartTTL)
	customerLines := cartlinerepo.NewPostgres(dbpool)

	cartService := cartsvc.New(guestLines, customerLines, productRepo, logger)
	customerService := customersvc.New(customerRepo, tokenRepo)
	guestService := guestsvc.New(cfg.GuestSessionTTL)
	reconciler := reconcilesvc.New(cartService, logger)
	orderClient := orderclient.New(cfg.OrderEndpoint, cfg.OrderTimeout, logger)
	checkoutService := checkoutsvc.New(cartService, settingsRepo, orderClient, logger)

	srv := httpserver.New(cfg.HTTPAddr, logger, dbpool, cache, httpserver.Deps{
		Customers:  customerService,
		Guests:     guestService,
		Carts:      cartService,
		Reconciler: reconciler,
		Checkout:   checkoutService,
		Settings:   settingsRepo,
		AdminToken: cfg.AdminToken,
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

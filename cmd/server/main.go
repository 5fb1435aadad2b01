package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stockroom/internal/config"
	"stockroom/internal/infra"
	"stockroom/internal/repository"
	"stockroom/internal/router"
	"stockroom/internal/service"
	"stockroom/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}

	// Repositories
	users := repository.NewUserRepository(db)
	categories := repository.NewCategoryRepository(db)
	brands := repository.NewBrandRepository(db)
	suppliers := repository.NewSupplierRepository(db)
	customers := repository.NewCustomerRepository(db)
	staffs := repository.NewStaffRepository(db)
	products := repository.NewProductRepository(db)
	transactions := repository.NewTransactionRepository(db)
	reports := repository.NewReportRepository(db)
	payments := repository.NewPaymentRepository(db)
	txm := repository.NewTxManager(db)

	// Background workers
	dispatcher := worker.NewDispatcher(rdb)
	mailer := infra.NewMailer(cfg)
	breaker := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	alerts := worker.NewStockAlertWorker(mailer, breaker, cfg.AlertEmail)
	pool := worker.NewPool(rdb, cfg.WorkerPoolSize, alerts)

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	pool.Start(workerCtx)

	// Services
	deps := router.Deps{
		Cfg:      cfg,
		DB:       db,
		RDB:      rdb,
		Auth:     service.NewAuthService(users, rdb, cfg),
		Products: service.NewProductService(products, categories, brands, rdb),
		Category: service.NewCategoryService(categories),
		Brand:    service.NewBrandService(brands),
		Supplier: service.NewSupplierService(suppliers),
		Customer: service.NewCustomerService(customers),
		Staff:    service.NewStaffService(staffs),
		Ledger:   service.NewLedgerService(transactions, products, staffs, suppliers, customers, txm, dispatcher),
		Reports:  service.NewReportService(reports, transactions, cfg.PDFStoragePath),
		Payments: service.NewPaymentService(payments, transactions),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router.New(deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	stopWorkers()
	pool.Wait()
	log.Info().Msg("bye")
}

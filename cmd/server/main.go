package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-seat-booking/internal/catalogue"
	"github.com/iliyamo/cinema-seat-booking/internal/config"
	"github.com/iliyamo/cinema-seat-booking/internal/database"
	"github.com/iliyamo/cinema-seat-booking/internal/flow"
	"github.com/iliyamo/cinema-seat-booking/internal/handler"
	"github.com/iliyamo/cinema-seat-booking/internal/kvstore"
	"github.com/iliyamo/cinema-seat-booking/internal/logger"
	"github.com/iliyamo/cinema-seat-booking/internal/payment"
	"github.com/iliyamo/cinema-seat-booking/internal/queue"
	"github.com/iliyamo/cinema-seat-booking/internal/repository"
	"github.com/iliyamo/cinema-seat-booking/internal/router"
	"github.com/iliyamo/cinema-seat-booking/internal/service"
	"github.com/iliyamo/cinema-seat-booking/internal/session"
	"github.com/iliyamo/cinema-seat-booking/internal/snack"
	"github.com/iliyamo/cinema-seat-booking/internal/ticket"
)

func main() {
	_ = godotenv.Load() // .env is optional

	cfg := config.Load()
	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := config.NewRedisClient(ctx, log)
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	var store kvstore.Store = kvstore.NewMemoryStore()
	if cfg.StoreBackend == config.BackendRedis {
		if rdb != nil {
			store = kvstore.NewRedisStore(rdb, cfg.StorePrefix)
		} else {
			log.Warn("redis store requested but unavailable, sessions kept in memory")
		}
	}

	feed, closeFeed, err := openFeed(ctx, cfg, log)
	if err != nil {
		log.Fatal("catalogue source", zap.Error(err))
	}
	defer closeFeed()
	cached := catalogue.NewCached(feed, cfg.CatalogueTTL, log)

	trailers, err := catalogue.LoadTrailers(cfg.TrailersPath)
	if err != nil {
		log.Warn("trailers file unreadable, using built-in list", zap.Error(err))
		trailers = catalogue.DefaultTrailers()
	}

	seats := config.LoadSeating()
	validate := flow.NewValidator()

	var events service.EventPublisher
	if cfg.EventsEnabled {
		events = queue.NewPublisher(cfg.AMQPURL, log)
		go func() {
			if err := queue.StartBookingConsumer(ctx, cfg.AMQPURL, cfg.BookingLog, log); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("booking consumer stopped", zap.Error(err))
			}
		}()
	}

	sessions := session.NewManager(store, session.Venue{Grid: seats.Grid, Holds: seats.Holds}, log)

	e := router.New(router.Deps{
		Catalogue: &handler.CatalogueHandler{Feed: cached, Trailers: trailers, Log: log},
		Booking: &handler.BookingHandler{
			Feed:     cached,
			Sessions: sessions,
			Seating:  seats,
			Carts:    snack.NewCarts(store, sessions.Locks(), log),
			Menu:     func() (snack.Menu, error) { return snack.LoadMenu(cfg.SnacksPath) },
			Checkout: service.NewCheckout(
				payment.NewChecker(validate),
				ticket.NewSigner(cfg.TicketSecret, cfg.TicketTTL),
				events,
				log,
			),
			Log: log,
		},
		Validator: handler.NewValidator(validate),
		Redis:     rdb,
		Cache:     config.LoadCacheConfig(),
		RateLimit: config.LoadRateLimitConfig(),
		Debug:     seats.DebugOverride,
		Log:       log,
	})

	addr := ":" + cfg.Port
	log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env),
		zap.String("catalogue", cfg.CatalogueSource), zap.Bool("redis", rdb != nil))

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server", zap.Error(err))
		}
	}()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}

// openFeed picks the catalogue source.  The returned func releases it.
func openFeed(ctx context.Context, cfg config.Config, log *zap.Logger) (catalogue.Feed, func(), error) {
	switch cfg.CatalogueSource {
	case config.SourceHTTP:
		return catalogue.NewHTTPFeed(cfg.CatalogueURL), func() {}, nil
	case config.SourceMySQL:
		db, err := database.Open(ctx, database.Params{
			User: cfg.DBUser, Pass: cfg.DBPass, Host: cfg.DBHost, Port: cfg.DBPort, Name: cfg.DBName,
		})
		if err != nil {
			return nil, nil, err
		}
		log.Info("catalogue from mysql", zap.String("db", cfg.DBName))
		return repository.NewCatalogueRepo(db), func() { _ = db.Close() }, nil
	}
	return catalogue.FileFeed{Path: cfg.CataloguePath}, func() {}, nil
}

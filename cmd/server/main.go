package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/IlTetta/CoWorkSpace-sub001/internal/config"
	"github.com/IlTetta/CoWorkSpace-sub001/internal/database"
	"github.com/IlTetta/CoWorkSpace-sub001/internal/handler"
	"github.com/IlTetta/CoWorkSpace-sub001/internal/logger"
	"github.com/IlTetta/CoWorkSpace-sub001/internal/middleware"
	"github.com/IlTetta/CoWorkSpace-sub001/internal/queue"
	"github.com/IlTetta/CoWorkSpace-sub001/internal/repository"
	"github.com/IlTetta/CoWorkSpace-sub001/internal/router"
	"github.com/IlTetta/CoWorkSpace-sub001/internal/scheduler"
	"github.com/IlTetta/CoWorkSpace-sub001/internal/service"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Log)

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.ErrorLogger.Fatalf("database: %v", err)
	}
	defer db.Close()
	if cfg.DBAutoMigrate {
		if err := database.Migrate(context.Background(), db); err != nil {
			logger.ErrorLogger.Fatalf("database: %v", err)
		}
	}

	// Redis backs the response cache and the rate limiter; both turn
	// into pass-throughs when it is unreachable.
	rdb := config.NewRedisClient(cfg.Redis)
	if rdb != nil {
		defer rdb.Close()
	}
	cache := middleware.NewResponseCache(cfg.Cache, rdb)

	var events service.EventPublisher = service.NopPublisher{}
	if cfg.Broker.Enabled {
		events = service.NewAMQPPublisher(cfg.Broker)
	}

	now := service.WallClock(cfg.Timezone)
	reservations := service.NewReservationService(
		service.NewSQLStore(repository.NewBookingStore(db)), events, cache, now, cfg.SlotWidthMinutes)
	spaces := service.NewSpaceService(repository.NewLocationRepo(db), repository.NewSpaceRepo(db), cache, now)
	users, tokens := repository.NewUserRepo(db), repository.NewTokenRepo(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	if cfg.Broker.Enabled {
		bookingLog := logger.NewFileLogger(cfg.Log, cfg.Log.BookingLog)
		consumers := map[string]queue.Handler{
			cfg.Broker.ReservationQueue: queue.BookingLogHandler(bookingLog),
			cfg.Broker.PaymentQueue:     queue.PaymentHandler(reservations, logger.InfoLogger),
		}
		for name, h := range consumers {
			wg.Add(1)
			go func(name string, h queue.Handler) {
				defer wg.Done()
				if err := queue.Consume(ctx, cfg.Broker, name, h); err != nil && !errors.Is(err, context.Canceled) {
					logger.ErrorLogger.Errorf("consumer %s stopped: %v", name, err)
				}
			}(name, h)
		}
	}

	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched, err = scheduler.New(cfg.Scheduler, cfg.Timezone, reservations, tokens)
		if err != nil {
			logger.ErrorLogger.Fatalf("scheduler: %v", err)
		}
		sched.Start()
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(logger.InfoLogger))
	e.Use(middleware.NewTokenBucket(cfg.RateLimit, rdb))

	reservationHandler := handler.NewReservationHandler(reservations)
	router.RegisterRoutes(e, db)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
	router.RegisterPublic(e, handler.NewPublicHandler(spaces), reservationHandler, cache)
	router.RegisterReservations(e, reservationHandler, cfg.JWTSecret)
	router.RegisterManage(e, handler.NewManageHandler(spaces), reservationHandler, cfg.JWTSecret)

	addr := ":" + cfg.Port
	go func() {
		logger.InfoLogger.Infof("listening on %s (env=%s, tz=%s)", addr, cfg.Env, cfg.Timezone)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorLogger.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.InfoLogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.ErrorLogger.Errorf("server shutdown: %v", err)
	}
	if sched != nil {
		sched.Stop(shutdownCtx)
	}
	wg.Wait()
}

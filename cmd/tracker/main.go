package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/99minutos/order-tracker/internal/api"
	"github.com/99minutos/order-tracker/internal/api/handler"
	"github.com/99minutos/order-tracker/internal/api/metrics"
	"github.com/99minutos/order-tracker/internal/core/domain"
	"github.com/99minutos/order-tracker/internal/core/ports"
	"github.com/99minutos/order-tracker/internal/core/service"
	"github.com/99minutos/order-tracker/internal/infrastructure/db/redis"
	"github.com/99minutos/order-tracker/internal/infrastructure/tracking"
	"github.com/99minutos/order-tracker/internal/infrastructure/view"
	"github.com/99minutos/order-tracker/internal/pkg/config"
	"github.com/99minutos/order-tracker/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		bootLog := logger.Get()
		bootLog.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "order-tracker",
	})

	// --- Optional Redis mirror ---
	var (
		mirror      ports.ViewMirror
		mirrorRead  handler.MirrorReader
		readyChecks = map[string]handler.Pinger{}
		rdb         *goredis.Client
		viewMirror  *redis.ViewMirror
	)
	redisCfg := redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB, TTL: cfg.Redis.TTL}
	if redisCfg.Enabled() {
		rdb, err = redis.Connect(ctx, redisCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer rdb.Close()

		viewMirror = redis.NewViewMirror(rdb, cfg.Tracking.OrderID, redisCfg.TTL, logger.Component("mirror"))
		mirror, mirrorRead = viewMirror, viewMirror
		readyChecks["redis"] = viewMirror
		log.Info().Str("addr", redisCfg.Addr).Str("key", redis.Key(cfg.Tracking.OrderID)).Msg("view mirror enabled")
	}

	// --- Render surfaces ---
	mapView := view.NewMap(view.MapConfig{
		Center: domain.LatLng{Lat: cfg.Map.CenterLat, Lng: cfg.Map.CenterLng},
		Zoom:   cfg.Map.Zoom,
		Tile:   view.TileLayer{URL: cfg.Map.TileURL, MaxZoom: cfg.Map.TileMaxZoom},
	}, mirror)
	board := view.NewBoard(mirror)

	// --- Poller ---
	recorder := metrics.NewRecorder()
	animator := service.NewMarkerAnimator(mapView, cfg.Tracking.AnimationDuration, cfg.Tracking.FrameInterval, recorder.FrameRendered)
	client := tracking.NewClient(tracking.Config{BaseURL: cfg.Tracking.APIURL, Timeout: cfg.Tracking.HTTPTimeout})
	poller := service.NewLocationPoller(service.PollerConfig{
		OrderID:        cfg.Tracking.OrderID,
		Interval:       cfg.Tracking.PollInterval,
		FlyDuration:    cfg.Tracking.FlyDuration,
		StopOnTerminal: cfg.Tracking.StopOnTerminal,
	}, client, mapView, board, animator, recorder, logger.Component("poller"))

	// --- View API ---
	e := api.NewRouter(api.Deps{
		Map:    mapView,
		Board:  board,
		Mirror: mirrorRead,
		Ready:  readyChecks,
		Log:    logger.Component("api"),
	})

	log.Info().
		Str("order_id", cfg.Tracking.OrderID).
		Str("url", client.OrderURL(cfg.Tracking.OrderID)).
		Str("view_addr", cfg.ViewAddr).
		Msg("starting order tracker")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return poller.Run(gctx)
	})
	g.Go(func() error {
		if err := e.Start(cfg.ViewAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if viewMirror != nil {
		g.Go(func() error {
			viewMirror.Run(gctx)
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		poller.Stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("order tracker stopped with error")
		os.Exit(1)
	}
	log.Info().Msg("order tracker stopped")
}

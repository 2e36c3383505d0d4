package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"giftmarket-backend/lib/browserutil"
	"giftmarket-backend/lib/configutil"
	"giftmarket-backend/lib/serviceutil"
	"giftmarket-backend/lib/telemetry"
	"giftmarket-backend/services/gift"
	"giftmarket-backend/services/market"

	"github.com/lmittmann/tint"
)

type Config struct {
	Port    int                `json:"port"`
	Market  market.Config      `json:"market"`
	Gift    gift.Config        `json:"gift"`
	Browser browserutil.Config `json:"browser"`
}

func main() {
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)

	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("failed to read config", err)
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}

	ctx := serviceutil.SignalContext()

	tel, err := telemetry.SetupFromEnv(ctx, "giftmarket")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("failed to setup telemetry", err)
	}

	pool, err := browserutil.NewPool(cfg.Browser)
	if err != nil {
		serviceutil.Fatal("failed to start browser pool", err)
	}

	resolver := market.NewResolver(
		cfg.Market.BaseURL,
		market.NewHTTPStrategy(cfg.Market.HTTP),
		market.NewRenderStrategy(pool, cfg.Market.Render),
	)
	marketService := market.NewService(
		resolver,
		market.NewListingCache(cfg.Market.Cache),
		market.NewEnricher(cfg.Market.Enrich),
	)
	giftService := gift.NewService(cfg.Gift)

	mux := http.NewServeMux()
	marketService.RegisterRoutes(mux)
	giftService.RegisterRoutes(mux)

	go serviceutil.StartHttpServer(cfg.Port, mux)

	<-ctx.Done()
	slog.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := pool.Close(); err != nil {
		slog.Error("failed to close browser pool", "err", err)
	}
	if err := tel.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown telemetry", "err", err)
	}
}

package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`
	ViewAddr  string `env:"VIEW_ADDR,  default=:8080"`

	Tracking TrackingConfig
	Map      MapConfig
	Redis    RedisConfig
}

// TrackingConfig drives the poller and its HTTP client. Defaults reproduce
// the hardcoded demo order.
type TrackingConfig struct {
	OrderID           string        `env:"ORDER_ID,           default=12345"`
	APIURL            string        `env:"TRACKING_API_URL,   default=http://localhost:8000/api/tracking"`
	PollInterval      time.Duration `env:"POLL_INTERVAL,      default=5s"`
	HTTPTimeout       time.Duration `env:"HTTP_TIMEOUT,       default=0s"`
	AnimationDuration time.Duration `env:"ANIMATION_DURATION, default=800ms"`
	FrameInterval     time.Duration `env:"FRAME_INTERVAL,     default=16ms"`
	FlyDuration       time.Duration `env:"FLY_DURATION,       default=600ms"`
	StopOnTerminal    bool          `env:"STOP_ON_TERMINAL,   default=false"`
}

type MapConfig struct {
	CenterLat   float64 `env:"MAP_CENTER_LAT, default=-33.45"`
	CenterLng   float64 `env:"MAP_CENTER_LNG, default=-70.66"`
	Zoom        int     `env:"MAP_ZOOM,       default=14"`
	TileURL     string  `env:"TILE_URL,       default=https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"`
	TileMaxZoom int     `env:"TILE_MAX_ZOOM,  default=19"`
}

// RedisConfig configures the optional view mirror; empty Addr disables it.
type RedisConfig struct {
	Addr string        `env:"REDIS_ADDR"`
	DB   int           `env:"REDIS_DB,  default=0"`
	TTL  time.Duration `env:"REDIS_TTL, default=10m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Tracking.OrderID == "":
		return fmt.Errorf("ORDER_ID must not be empty")
	case c.Tracking.APIURL == "":
		return fmt.Errorf("TRACKING_API_URL must not be empty")
	case c.Tracking.PollInterval <= 0:
		return fmt.Errorf("POLL_INTERVAL must be positive, got %s", c.Tracking.PollInterval)
	case c.Map.CenterLat < -90 || c.Map.CenterLat > 90:
		return fmt.Errorf("MAP_CENTER_LAT out of range: %v", c.Map.CenterLat)
	case c.Map.CenterLng < -180 || c.Map.CenterLng > 180:
		return fmt.Errorf("MAP_CENTER_LNG out of range: %v", c.Map.CenterLng)
	}
	return nil
}

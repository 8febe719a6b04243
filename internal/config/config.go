package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"time"

	"github.com/im45145v/bipulse/internal/dataset"
	"github.com/im45145v/bipulse/internal/model"
	"github.com/spf13/viper"
)

//go:embed defaults.yaml
var defaults []byte

// ---- Root ----

type Config struct {
	HTTP      HTTPConfig      `mapstructure:"http"`
	Log       LogConfig       `mapstructure:"log"`
	APIKey    string          `mapstructure:"api_key"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Data      DataConfig      `mapstructure:"data"`
	MySQL     DatabaseConfig  `mapstructure:"mysql"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Generator GeneratorConfig `mapstructure:"generator"`
}

// ---- Leaf structs ----

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type RateLimitConfig struct {
	RPS int `mapstructure:"rps"`
}

// DataConfig selects where serve/report load the dataset from.
type DataConfig struct {
	Dir    string `mapstructure:"dir"`
	Source string `mapstructure:"source"` // csv|mysql
}

type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idletime"`
	PingTimeout     time.Duration `mapstructure:"ping_timeout"`
}

type RedisConfig struct {
	Addr        string        `mapstructure:"addr"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
}

type GeneratorConfig struct {
	NumCustomers         int                `mapstructure:"num_customers"`
	Seed                 int64              `mapstructure:"seed"`
	OrdersPerCustomerMin int                `mapstructure:"orders_per_customer_min"`
	OrdersPerCustomerMax int                `mapstructure:"orders_per_customer_max"`
	DaysBack             int                `mapstructure:"days_back"`
	SegmentDistribution  map[string]float64 `mapstructure:"segment_distribution"`
	InterestPool         []string           `mapstructure:"interest_pool"`
	ProductCategories    []string           `mapstructure:"product_categories"`
	OrderChannels        []string           `mapstructure:"order_channels"`
}

// DatasetConfig converts the YAML generator block into the typed generation
// contract, rejecting unknown segments or channels up front.
func (g GeneratorConfig) DatasetConfig() (dataset.Config, error) {
	dist := make(map[model.Segment]float64, len(g.SegmentDistribution))
	for raw, frac := range g.SegmentDistribution {
		seg, ok := model.ParseSegment(raw)
		if !ok {
			return dataset.Config{}, fmt.Errorf("generator config: unknown segment %q", raw)
		}
		dist[seg] = frac
	}

	channels := make([]model.Channel, 0, len(g.OrderChannels))
	for _, raw := range g.OrderChannels {
		ch, ok := model.ParseChannel(raw)
		if !ok {
			return dataset.Config{}, fmt.Errorf("generator config: unknown channel %q", raw)
		}
		channels = append(channels, ch)
	}

	return dataset.Config{
		NumCustomers:         g.NumCustomers,
		SegmentDistribution:  dist,
		OrdersPerCustomerMin: g.OrdersPerCustomerMin,
		OrdersPerCustomerMax: g.OrdersPerCustomerMax,
		InterestPool:         g.InterestPool,
		ProductCategories:    g.ProductCategories,
		OrderChannels:        channels,
		DaysBack:             g.DaysBack,
		Seed:                 g.Seed,
	}, nil
}

// Load reads embedded defaults, merges user YAML (if provided), and applies env overrides (BIPULSE_*).
func Load(path string) (Config, error) {
	v := viper.New()

	// embedded defaults
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return Config{}, err
	}

	if path != "" {
		v.SetConfigFile(path)
		_ = v.MergeInConfig()
	}

	// env override (BIPULSE_*)
	v.SetEnvPrefix("BIPULSE")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/travelplanner/service-trip/internal/platform/database"
)

// Place table backends.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// PlacesConfig selects and locates the place table.
type PlacesConfig struct {
	Backend     string
	DatasetPath string
	SQLitePath  string
}

// RedisConfig configures the optional search cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// KafkaConfig configures event publishing. No brokers disables it.
type KafkaConfig struct {
	Brokers     []string
	GroupPrefix string
}

// FaultConfig configures the sentinel failures.
type FaultConfig struct {
	Enabled        bool
	LookupSentinel string
	RouteSentinel  string
}

// TimingConfig holds the artificial latencies and the picker debounce window.
type TimingConfig struct {
	LookupDelay    time.Duration
	RouteDelay     time.Duration
	PickerDebounce time.Duration
}

// SessionConfig governs trip session expiry.
type SessionConfig struct {
	TTL           time.Duration
	PruneInterval time.Duration
}

// ServiceConfig holds all configuration for the trip service.
type ServiceConfig struct {
	Port        string
	AppEnv      string
	Places      PlacesConfig
	DBConfig    database.PostgresConfig
	RedisConfig RedisConfig
	KafkaConfig KafkaConfig
	Faults      FaultConfig
	Timing      TimingConfig
	Sessions    SessionConfig
}

// Load reads configuration from .env, an optional trip.yaml and TRIP_* environment variables, in rising precedence.
func Load() (*ServiceConfig, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("TRIP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	v.SetConfigName("trip")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service_port", ":8080")
	v.SetDefault("app_env", "development")

	v.SetDefault("places.backend", BackendMemory)
	v.SetDefault("places.dataset_path", "")
	v.SetDefault("places.sqlite_path", "data/places.db")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "postgres")
	v.SetDefault("db.name", "trip_db")
	v.SetDefault("db.sslmode", "disable")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 10*time.Minute)

	v.SetDefault("kafka.brokers", "")
	v.SetDefault("kafka.group_prefix", "")

	v.SetDefault("faults.enabled", true)
	v.SetDefault("faults.lookup_sentinel", "fail")
	v.SetDefault("faults.route_sentinel", "Dijon")

	v.SetDefault("lookup.delay", time.Second)
	v.SetDefault("route.delay", 2*time.Second)
	v.SetDefault("picker.debounce", 300*time.Millisecond)

	v.SetDefault("sessions.ttl", 2*time.Hour)
	v.SetDefault("sessions.prune_interval", 5*time.Minute)
}

func fromViper(v *viper.Viper) *ServiceConfig {
	return &ServiceConfig{
		Port:   v.GetString("service_port"),
		AppEnv: v.GetString("app_env"),
		Places: PlacesConfig{
			Backend:     strings.ToLower(v.GetString("places.backend")),
			DatasetPath: v.GetString("places.dataset_path"),
			SQLitePath:  v.GetString("places.sqlite_path"),
		},
		DBConfig: database.PostgresConfig{
			Host:     v.GetString("db.host"),
			Port:     v.GetString("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			DBName:   v.GetString("db.name"),
			SSLMode:  v.GetString("db.sslmode"),
		},
		RedisConfig: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			TTL:      v.GetDuration("redis.ttl"),
		},
		KafkaConfig: KafkaConfig{
			Brokers:     splitList(v.GetString("kafka.brokers")),
			GroupPrefix: v.GetString("kafka.group_prefix"),
		},
		Faults: FaultConfig{
			Enabled:        v.GetBool("faults.enabled"),
			LookupSentinel: v.GetString("faults.lookup_sentinel"),
			RouteSentinel:  v.GetString("faults.route_sentinel"),
		},
		Timing: TimingConfig{
			LookupDelay:    v.GetDuration("lookup.delay"),
			RouteDelay:     v.GetDuration("route.delay"),
			PickerDebounce: v.GetDuration("picker.debounce"),
		},
		Sessions: SessionConfig{
			TTL:           v.GetDuration("sessions.ttl"),
			PruneInterval: v.GetDuration("sessions.prune_interval"),
		},
	}
}

// Validate rejects configurations the service cannot start with.
func (c *ServiceConfig) Validate() error {
	switch c.Places.Backend {
	case BackendMemory, BackendPostgres, BackendSQLite:
	default:
		return fmt.Errorf("invalid places backend %q: want %s, %s or %s",
			c.Places.Backend, BackendMemory, BackendPostgres, BackendSQLite)
	}
	if c.Timing.LookupDelay < 0 || c.Timing.RouteDelay < 0 || c.Timing.PickerDebounce < 0 {
		return errors.New("delays must not be negative")
	}
	if c.Sessions.TTL <= 0 || c.Sessions.PruneInterval <= 0 {
		return errors.New("session ttl and prune interval must be positive")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

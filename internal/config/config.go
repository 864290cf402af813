// Package config loads todo-api settings from defaults, an optional TOML
// file, environment variables and command-line flags, in that order.
package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"todo-api/internal/observability/jsonlog"
)

const (
	DriverMemory   = "memory"
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"

	// DefaultFile is picked up from the working directory when no path is given.
	DefaultFile = "todo-api.toml"
)

type Config struct {
	Server   Server `toml:"server"`
	Store    Store  `toml:"store"`
	Log      Log    `toml:"log"`
	Timezone string `toml:"timezone"`
}

type Server struct {
	Addr              string        `toml:"addr"`
	RequestTimeout    time.Duration `toml:"request-timeout"`
	ReadHeaderTimeout time.Duration `toml:"read-header-timeout"`
	ShutdownTimeout   time.Duration `toml:"shutdown-timeout"`
}

type Store struct {
	// Driver selects the backend: memory, mongo or postgres.
	Driver string `toml:"driver"`
	// ConnectAttempts bounds the startup ping retries.
	ConnectAttempts int      `toml:"connect-attempts"`
	Mongo           Mongo    `toml:"mongo"`
	Postgres        Postgres `toml:"postgres"`
}

type Mongo struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

type Postgres struct {
	URL string `toml:"url"`
}

type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

func Default() Config {
	return Config{
		Server: Server{
			Addr:              ":8080",
			RequestTimeout:    3 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   5 * time.Second,
		},
		Store: Store{
			Driver:          DriverMemory,
			ConnectAttempts: 5,
			Mongo: Mongo{
				Database:   "todo",
				Collection: "todos",
			},
		},
		Log: Log{
			Level:  "info",
			Format: jsonlog.FormatJSON,
		},
		Timezone: "UTC",
	}
}

// Flags holds the command-line overrides bound to a flag set.
type Flags struct {
	fs *pflag.FlagSet

	ConfigPath      string
	Addr            string
	Driver          string
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
	DBURL           string
	Timezone        string
	LogLevel        string
	LogFormat       string
}

// BindFlags registers the config flags on fs.
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVarP(&f.ConfigPath, "config", "c", "", "path to a TOML config file")
	fs.StringVar(&f.Addr, "addr", "", "listen address")
	fs.StringVar(&f.Driver, "store", "", "store driver: memory, mongo or postgres")
	fs.StringVar(&f.MongoURI, "mongo-uri", "", "MongoDB connection URI")
	fs.StringVar(&f.MongoDatabase, "mongo-database", "", "MongoDB database name")
	fs.StringVar(&f.MongoCollection, "mongo-collection", "", "MongoDB collection name")
	fs.StringVar(&f.DBURL, "db-url", "", "Postgres connection URL")
	fs.StringVar(&f.Timezone, "timezone", "", "IANA time zone for dates without an offset")
	fs.StringVar(&f.LogLevel, "log-level", "", "log level: debug, info, warn or error")
	fs.StringVar(&f.LogFormat, "log-format", "", "log format: json, logfmt or text")
	return f
}

func (f *Flags) changed(name string) bool {
	return f != nil && f.fs != nil && f.fs.Changed(name)
}

// Load builds the effective config. getenv is usually os.Getenv.
func Load(flags *Flags, getenv func(string) string) (*Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg := Default()

	path, explicit := configPath(flags, getenv)
	if path != "" {
		if err := loadFile(&cfg, path, explicit); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(&cfg, getenv); err != nil {
		return nil, err
	}
	applyFlags(&cfg, flags)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func configPath(flags *Flags, getenv func(string) string) (string, bool) {
	if flags != nil && flags.ConfigPath != "" {
		return flags.ConfigPath, true
	}
	if p := getenv("TODO_API_CONFIG"); p != "" {
		return p, true
	}
	return DefaultFile, false
}

func loadFile(cfg *Config, path string, explicit bool) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("config file %s: %w", path, err)
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("loading config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("config file %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	setString := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}

	setString(&cfg.Server.Addr, "TODO_API_ADDR")
	setString(&cfg.Store.Driver, "TODO_API_STORE")
	setString(&cfg.Store.Mongo.URI, "MONGO_URI")
	setString(&cfg.Store.Mongo.Database, "MONGO_DATABASE")
	setString(&cfg.Store.Mongo.Collection, "MONGO_COLLECTION")
	setString(&cfg.Store.Postgres.URL, "DB_URL")
	setString(&cfg.Timezone, "TODO_API_TIMEZONE")
	setString(&cfg.Log.Level, "TODO_API_LOG_LEVEL")
	setString(&cfg.Log.Format, "TODO_API_LOG_FORMAT")

	if v := getenv("TODO_API_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TODO_API_REQUEST_TIMEOUT: %w", err)
		}
		cfg.Server.RequestTimeout = d
	}
	if v := getenv("TODO_API_CONNECT_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TODO_API_CONNECT_ATTEMPTS: %w", err)
		}
		cfg.Store.ConnectAttempts = n
	}
	return nil
}

func applyFlags(cfg *Config, f *Flags) {
	if f == nil {
		return
	}
	set := func(name string, dst *string, v string) {
		if f.changed(name) {
			*dst = v
		}
	}
	set("addr", &cfg.Server.Addr, f.Addr)
	set("store", &cfg.Store.Driver, f.Driver)
	set("mongo-uri", &cfg.Store.Mongo.URI, f.MongoURI)
	set("mongo-database", &cfg.Store.Mongo.Database, f.MongoDatabase)
	set("mongo-collection", &cfg.Store.Mongo.Collection, f.MongoCollection)
	set("db-url", &cfg.Store.Postgres.URL, f.DBURL)
	set("timezone", &cfg.Timezone, f.Timezone)
	set("log-level", &cfg.Log.Level, f.LogLevel)
	set("log-format", &cfg.Log.Format, f.LogFormat)
}

func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, errors.New("server.request-timeout must be positive"))
	}

	switch c.Store.Driver {
	case DriverMemory:
	case DriverMongo:
		if c.Store.Mongo.URI == "" {
			errs = append(errs, errors.New("MONGO_URI is required for the mongo store"))
		}
		if c.Store.Mongo.Database == "" || c.Store.Mongo.Collection == "" {
			errs = append(errs, errors.New("mongo database and collection are required"))
		}
	case DriverPostgres:
		if c.Store.Postgres.URL == "" {
			errs = append(errs, errors.New("DB_URL is required for the postgres store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store driver %q", c.Store.Driver))
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone %q: %w", c.Timezone, err))
	}
	if _, err := jsonlog.ParseFormat(c.Log.Format); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Location returns the configured zone. Call after Validate.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Redacted returns a copy safe to print: connection passwords are masked.
func (c Config) Redacted() Config {
	c.Store.Mongo.URI = redactURL(c.Store.Mongo.URI)
	c.Store.Postgres.URL = redactURL(c.Store.Postgres.URL)
	return c
}

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "REDACTED"
	}
	return u.Redacted()
}

// Write encodes the config as TOML.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/alex-pricope/roomvote/logging"
	"github.com/spf13/viper"
)

const (
	StorageBackendFile   = "file"
	StorageBackendDynamo = "dynamodb"

	DefaultBaseURL       = "http://localhost:5000"
	DefaultTimeout       = 10 * time.Second
	DefaultPollInterval  = 5 * time.Second
	DefaultFallbackImage = "https://via.placeholder.com/400"
	DefaultIdentityTable = "RoomIdentities"
	DefaultRegion        = "us-east-1"
	DefaultIdentityTTL   = 7 * 24 * time.Hour
	DefaultLogLevel      = "info"
)

type Config struct {
	ServerConfig
	PollConfig
	DisplayConfig
	StorageConfig
	LogConfig
	UserConfig
}

type ServerConfig struct {
	BaseURL   string
	Timeout   time.Duration
	AuthToken string
}

type PollConfig struct {
	Interval time.Duration
}

type DisplayConfig struct {
	FallbackImage string
}

type StorageConfig struct {
	Backend             string
	File                string
	TableNameIdentities string
	Region              string
	Endpoint            string
	IdentityTTL         time.Duration
}

type LogConfig struct {
	Level string
	File  string
}

type UserConfig struct {
	// ID is the viewer's account id; it is compared to the room's host id.
	ID string
}

var settingsOnce sync.Once

// Dir is where the config file and the file identity store live by default.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".roomvote"
	}
	return filepath.Join(home, ".config", "roomvote")
}

func ReadConfig() *Config {
	var conf = &Config{
		ServerConfig: ServerConfig{
			BaseURL:   getStringOrDefault("server.base_url", DefaultBaseURL),
			Timeout:   getDurationOrDefault("server.timeout", DefaultTimeout),
			AuthToken: getStringOrDefault("server.auth_token", ""),
		},
		PollConfig: PollConfig{
			Interval: getDurationOrDefault("poll.interval", DefaultPollInterval),
		},
		DisplayConfig: DisplayConfig{
			FallbackImage: getStringOrDefault("display.fallback_image", DefaultFallbackImage),
		},
		StorageConfig: StorageConfig{
			Backend:             getStringOrDefault("storage.backend", StorageBackendFile),
			File:                getStringOrDefault("storage.file", filepath.Join(Dir(), "identities.json")),
			TableNameIdentities: getStringOrDefault("storage.table_identities", DefaultIdentityTable),
			Region:              getStringOrDefault("storage.region", DefaultRegion),
			Endpoint:            getStringOrDefault("storage.endpoint", ""),
			IdentityTTL:         getDurationOrDefault("storage.identity_ttl", DefaultIdentityTTL),
		},
		LogConfig: LogConfig{
			Level: getStringOrDefault("log.level", DefaultLogLevel),
			File:  getStringOrDefault("log.file", ""),
		},
		UserConfig: UserConfig{
			ID: getStringOrDefault("user.id", ""),
		},
	}

	settingsOnce.Do(func() {
		logging.Log.Print("Reading settings!")
	})

	return conf
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs []error

	if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("server.base_url %q is not an absolute URL", c.BaseURL))
	}
	if c.Timeout <= 0 {
		errs = append(errs, errors.New("server.timeout must be positive"))
	}
	if c.Interval <= 0 {
		errs = append(errs, errors.New("poll.interval must be positive"))
	}
	if c.IdentityTTL <= 0 {
		errs = append(errs, errors.New("storage.identity_ttl must be positive"))
	}

	switch c.Backend {
	case StorageBackendFile:
		if c.StorageConfig.File == "" {
			errs = append(errs, errors.New("storage.file is required for the file backend"))
		}
	case StorageBackendDynamo:
		if c.TableNameIdentities == "" {
			errs = append(errs, errors.New("storage.table_identities is required for the dynamodb backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.backend %q is not one of %s, %s", c.Backend, StorageBackendFile, StorageBackendDynamo))
	}

	return errors.Join(errs...)
}

func getStringOrDefault(name string, def string) string {
	if viper.IsSet(name) {
		v := viper.GetString(name)
		logging.Log.Debugf("found '%s' in viper", name)
		return v
	}
	logging.Log.Debugf("could not find '%s' in viper! Returning default", name)
	return def
}

func getDurationOrDefault(name string, def time.Duration) time.Duration {
	if viper.IsSet(name) {
		v := viper.GetDuration(name)
		logging.Log.Debugf("found '%s' in viper", name)
		return v
	}
	logging.Log.Debugf("could not find '%s' in viper! Returning default", name)
	return def
}

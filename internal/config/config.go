package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	DBPath      string        // Path to the SQLite airline database
	HTTPAddr    string        // Listen address for the chat service
	ArchiveDump string        // Optional path to the historical flights SQL dump
	ContextSize int           // Max sessions remembered for follow-ups
	CacheTTL    time.Duration // Reply cache lifetime
	Debug       bool
}

// Load resolves configuration from defaults, AIRPORTCHAT_* environment
// variables, and any command-line flags already bound to v.
func Load(v *viper.Viper) Config {
	v.SetEnvPrefix("AIRPORTCHAT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("db-path", "airportchat.db")
	v.SetDefault("http-addr", ":8080")
	v.SetDefault("archive-dump", "")
	v.SetDefault("context-size", 4096)
	v.SetDefault("cache-ttl", 5*time.Minute)
	v.SetDefault("debug", false)

	return Config{
		DBPath:      v.GetString("db-path"),
		HTTPAddr:    v.GetString("http-addr"),
		ArchiveDump: v.GetString("archive-dump"),
		ContextSize: v.GetInt("context-size"),
		CacheTTL:    v.GetDuration("cache-ttl"),
		Debug:       v.GetBool("debug"),
	}
}

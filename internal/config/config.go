package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Configuration struct {
	// ListenAddr is the address the web server binds to, e.g. ":5001".
	ListenAddr string
	// DbUrl is the path to the SQLite database file.
	DbUrl string
	// BaseURL is the public URL the app is reachable at. The Mastodon OAuth
	// redirect URI is derived from it, so it must match what the user's
	// browser can actually reach.
	BaseURL string
	// SpoolDir is the directory where upload bytes are spooled to disk for
	// the browser-driven Twitter publisher.
	SpoolDir string
	// SessionKey is the secret used to authenticate the flash-message session
	// cookie.
	SessionKey string
	// LoginTimeout bounds how long the interactive Twitter login window stays
	// open waiting for the user to finish logging in.
	LoginTimeout time.Duration
	// Headless controls whether the Twitter publish browser runs headless.
	// The login browser is always visible; the user has to type into it.
	Headless bool
	// Debug, if true, makes the application log all HTTP requests.
	Debug bool
}

// ReadConfig loads the configuration from the environment, with a .env file
// honoured in development. All keys are prefixed GOPOSTER_, e.g.
// GOPOSTER_LISTEN_ADDR.
func ReadConfig() (Configuration, error) {
	// Ignore the error: a missing .env file just means plain env vars.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("goposter")
	v.AutomaticEnv()

	v.SetDefault("listen_addr", ":5001")
	v.SetDefault("db_url", "goposter.db")
	v.SetDefault("base_url", "http://localhost:5001")
	v.SetDefault("spool_dir", "spool")
	v.SetDefault("session_key", "u46IpCV9y5Vlur8YvODJEhgOY8m9JVE4")
	v.SetDefault("login_timeout", 300*time.Second)
	v.SetDefault("headless", true)
	v.SetDefault("debug", false)

	return Configuration{
		ListenAddr:   v.GetString("listen_addr"),
		DbUrl:        v.GetString("db_url"),
		BaseURL:      v.GetString("base_url"),
		SpoolDir:     v.GetString("spool_dir"),
		SessionKey:   v.GetString("session_key"),
		LoginTimeout: v.GetDuration("login_timeout"),
		Headless:     v.GetBool("headless"),
		Debug:        v.GetBool("debug"),
	}, nil
}

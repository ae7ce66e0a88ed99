package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/alexedwards/scs"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	zero "github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/goposter/internal/auth"
	"github.com/sidereusnuntius/goposter/internal/config"
	db "github.com/sidereusnuntius/goposter/internal/db/impl"
	"github.com/sidereusnuntius/goposter/internal/initialization"
	"github.com/sidereusnuntius/goposter/internal/platform"
	"github.com/sidereusnuntius/goposter/internal/publish"
	service "github.com/sidereusnuntius/goposter/internal/service/impl"
	"github.com/sidereusnuntius/goposter/internal/storage/filestore"
	"github.com/sidereusnuntius/goposter/internal/web"

	_ "github.com/mattn/go-sqlite3"
)

func main() {
	zero.Logger = zero.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	config, err := config.ReadConfig()
	if err != nil {
		log.Fatal(err)
	}
	if config.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	d, err := initialization.OpenDB(config.DbUrl)
	if err != nil {
		log.Fatal(err)
	}
	zero.Info().Str("db", config.DbUrl).Msg("database connection established")

	if err = initialization.SetupDB(d); err != nil {
		log.Fatal(err)
	}

	store := db.New(d)

	spool, err := filestore.New(config.SpoolDir)
	if err != nil {
		zero.Fatal().Err(err).Str("dir", config.SpoolDir).Msg("unable to create spool directory")
	}

	pending := auth.NewPendingStore(10 * time.Minute)
	bluesky := &auth.Bluesky{}
	twitter := &auth.Twitter{LoginTimeout: config.LoginTimeout}
	mastodon := &auth.Mastodon{BaseURL: config.BaseURL, Pending: pending}

	publisher := publish.New(store,
		platform.NewBluesky(),
		platform.NewMastodon(),
		platform.NewTwitter(spool, config.Headless),
	)

	service := service.New(store, bluesky, twitter, mastodon, publisher)

	manager := scs.NewCookieManager(config.SessionKey)

	handler := web.New(&config, service, manager)
	router := chi.NewRouter()
	if config.Debug {
		router.Use(middleware.Logger)
	}
	handler.Mount(router)

	s := &http.Server{
		Addr:    config.ListenAddr,
		Handler: router,
	}

	zero.Info().Str("addr", config.ListenAddr).Msg("started server")
	if err = s.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"

	"github.com/AyoubMahfoud/SharingMezzi-sub000/api"
	fakeinvoicerepo "github.com/AyoubMahfoud/SharingMezzi-sub000/billing/repofake"
	"github.com/AyoubMahfoud/SharingMezzi-sub000/internal/config"
	fakeparkingrepo "github.com/AyoubMahfoud/SharingMezzi-sub000/parkings/repofake"
	"github.com/AyoubMahfoud/SharingMezzi-sub000/store/postgres"
	"github.com/AyoubMahfoud/SharingMezzi-sub000/token"
	faketriprepo "github.com/AyoubMahfoud/SharingMezzi-sub000/trips/repofake"
	fakeuserrepo "github.com/AyoubMahfoud/SharingMezzi-sub000/users/repofake"
	fakevehiclerepo "github.com/AyoubMahfoud/SharingMezzi-sub000/vehicles/repofake"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Str("service", "api").Logger()
	if err := run(log); err != nil {
		log.Fatal().Err(err).Msg("error running api server")
	}
	log.Info().Msg("server stopped")
}

func run(log zerolog.Logger) error {
	cfg := config.New()
	displayAppname(cfg.GetAppName() + " API")

	secret, err := cfg.GetAuthSecret()
	if err != nil {
		return err
	}
	tokens := token.New(
		token.NewHMACSigner(secret),
		cfg.GetAuthIssuer(),
		cfg.GetAuthAudience(),
		token.WithExpiry(cfg.GetTokenExpiry()),
	)

	repos, cleanup, err := buildRepos(cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	apiServer, err := api.New(cfg, repos, tokens, log)
	if err != nil {
		return err
	}

	server := &http.Server{Addr: cfg.GetAPIPort(), Handler: apiServer}
	go listenAndServe(server, log)
	waitForStopSignal()
	return shutdown(server)
}

func buildRepos(cfg config.Config, log zerolog.Logger) (api.Repos, func(), error) {
	dsn := cfg.GetDatabaseDSN()
	if dsn == "" {
		log.Warn().Msg("no DATABASE_DSN configured, running on in-memory repositories")
		return api.Repos{
			Users:    fakeuserrepo.NewFakeUserRepo(),
			Vehicles: fakevehiclerepo.NewFakeVehicleRepo(),
			Parkings: fakeparkingrepo.NewFakeParkingRepo(),
			Trips:    faketriprepo.NewFakeTripRepo(),
			Invoices: fakeinvoicerepo.NewFakeInvoiceRepo(),
		}, func() {}, nil
	}

	store, err := postgres.Open(context.Background(), dsn)
	if err != nil {
		return api.Repos{}, nil, err
	}
	return api.Repos{
		Users:    store.Users(),
		Vehicles: store.Vehicles(),
		Parkings: store.Parkings(),
		Trips:    store.Trips(),
		Invoices: store.Invoices(),
	}, func() { _ = store.Close() }, nil
}

func listenAndServe(server *http.Server, log zerolog.Logger) {
	log.Info().Str("addr", server.Addr).Msg("api server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}

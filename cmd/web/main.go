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

	"github.com/AyoubMahfoud/SharingMezzi-sub000/internal/config"
	"github.com/AyoubMahfoud/SharingMezzi-sub000/web"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Str("service", "web").Logger()
	if err := run(log); err != nil {
		log.Fatal().Err(err).Msg("error running web server")
	}
	log.Info().Msg("server stopped")
}

func run(log zerolog.Logger) error {
	cfg := config.New()
	displayAppname(cfg.GetAppName())

	backend := web.NewAPIClient(cfg.GetAPIBaseURL())
	webServer := web.New(cfg, backend, log)

	stopSweeper := make(chan struct{})
	defer close(stopSweeper)
	webServer.Sessions().StartSweeper(time.Minute, stopSweeper)

	server := &http.Server{Addr: cfg.GetWebPort(), Handler: webServer}
	go listenAndServe(server, log)
	waitForStopSignal()
	return shutdown(server)
}

func listenAndServe(server *http.Server, log zerolog.Logger) {
	log.Info().Str("addr", server.Addr).Msg("web server listening")
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

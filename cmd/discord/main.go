package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"groovebot/internal/config"
	"groovebot/internal/discord"
	"groovebot/internal/storage"
	v "groovebot/internal/version"
)

func main() {
	log.Printf("[INFO] Starting %v %v...", v.AppName, v.Version)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New()
	if err != nil {
		log.Fatal("[ERR] Config error: ", err)
	}

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		log.Fatal("[ERR] Storage error: ", err)
	}
	defer store.Close()

	errCh := make(chan error, 1)
	go func() {
		if err := discord.StartBot(ctx, cfg, store); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Printf("[INFO] Received signal %s, shutting down...\n", s)
		cancel()
	case err := <-errCh:
		if err != nil {
			log.Println("[ERR] Discord bot error:", err)
		}
		cancel()
	}

	log.Println("[INFO] Discord bot exited cleanly")
}

package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"croesus/internal/app/bootstrap"
)

// Worker process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring.
// 3) Start schedulers (expiry sweeper, outbox relays).
func main() {
	_ = godotenv.Load()

	log.Println("croesus worker starting")
	app, err := bootstrap.BuildWorker()
	if err != nil {
		log.Fatalf("bootstrap worker failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("worker shutdown close failed: %v", err)
		}
	}()

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("croesus worker stopped with error: %v", err)
	}
}

package main

import (
	"log"

	"github.com/flarehq/flare/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		log.Fatalf("❌ flare failed to start: %v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatalf("❌ flare exited with error: %v", err)
	}
}

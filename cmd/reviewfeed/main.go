// Command reviewfeed consumes review.created events and appends them to a
// log file.  It runs as its own process next to the API server.
package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/iliyamo/komi-attractions/internal/config"
	"github.com/iliyamo/komi-attractions/internal/queue"
)

func main() {
	config.LoadDotEnv()
	fc := config.LoadFeedConfig()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("review feed writing to %s", fc.LogPath)
	if err := queue.StartReviewConsumer(ctx, fc.RabbitURL, fc.LogPath); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}

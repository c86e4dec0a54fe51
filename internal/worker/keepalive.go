package worker

import (
	"context"
	"log"
	"time"

	"quakewatch/internal/backend"
	"quakewatch/internal/config"
)

// StartKeepAliveWorker starts the worker that pings the analysis backend's
// health endpoint on a fixed interval so the hosting platform never idles it
// into a cold start. Failures are logged and never surfaced to users.
func StartKeepAliveWorker(client *backend.Client) {
	ticker := time.NewTicker(config.KeepAlivePingInterval)
	go func() {
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := client.Health(ctx); err != nil {
				log.Printf("Keep-alive ping failed: %v", err)
			}
			cancel()
		}
	}()

	log.Println("Keep-alive worker started with interval:", config.KeepAlivePingInterval)
}

package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"quakewatch/internal/api"
	"quakewatch/internal/config"
	"quakewatch/internal/redis"
	"quakewatch/internal/relay"
)

var (
	portFlag       string
	sessionDirFlag string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "quakewatch-relay",
		Short: "Run the WhatsApp notification relay",
		Long: `Quakewatch relay wraps a WhatsApp automation session and exposes
status, QR pairing, send and restart endpoints over HTTP for the
alerting backend to call.`,
		Run: func(cmd *cobra.Command, args []string) {
			if err := run(); err != nil {
				cmd.PrintErrln(err)
				os.Exit(1)
			}
		},
	}

	rootCmd.Flags().StringVarP(&portFlag, "port", "p", "", "Listen address (overrides RELAY_PORT)")
	rootCmd.Flags().StringVar(&sessionDirFlag, "session-dir", "", "Credential cache directory (overrides SESSION_DIR)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if portFlag != "" {
		cfg.RelayPort = portFlag
	}
	if sessionDirFlag != "" {
		cfg.SessionDir = sessionDirFlag
	}

	// Delivery journal only runs when Redis is configured; the relay works
	// fine without it, the status endpoint just reports zero sends.
	var journal relay.Journal = relay.NopJournal{}
	if cfg.RedisURL != "" {
		redis.Init(cfg.RedisURL)
		defer redis.Close()
		journal = relay.NewRedisJournal()
	}

	transport := relay.NewWhatsmeowTransport(cfg.SessionDir)
	machine := relay.NewMachine(transport, journal, cfg.SessionDir, relay.DefaultDelays())
	machine.Start()

	r := gin.Default()
	api.SetupRelayRouter(r, machine)

	log.Println("Relay listening on", cfg.RelayPort)
	log.Printf("Status: http://localhost%s/status", cfg.RelayPort)
	log.Printf("QR code: http://localhost%s/qr", cfg.RelayPort)
	return r.Run(cfg.RelayPort)
}

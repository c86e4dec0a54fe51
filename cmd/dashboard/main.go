package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"quakewatch/internal/api"
	"quakewatch/internal/backend"
	"quakewatch/internal/config"
	"quakewatch/internal/worker"
)

var (
	portFlag    string
	backendFlag string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "quakewatch-dashboard",
		Short: "Serve the earthquake risk dashboard",
		Long: `Quakewatch dashboard fronts the external risk-analysis backend:
it fetches risk snapshots, renders the map/list document server-side and
serves the browser shell that draws it.`,
		Run: func(cmd *cobra.Command, args []string) {
			if err := run(); err != nil {
				cmd.PrintErrln(err)
				os.Exit(1)
			}
		},
	}

	rootCmd.Flags().StringVarP(&portFlag, "port", "p", "", "Listen address (overrides PORT)")
	rootCmd.Flags().StringVarP(&backendFlag, "backend", "b", "", "Analysis backend base URL (overrides BACKEND_URL)")

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
		cfg.Port = portFlag
	}
	if backendFlag != "" {
		cfg.BackendURL = backendFlag
	}

	client := backend.NewClient(resolveBackendURL(cfg))
	log.Println("Using analysis backend:", client.BaseURL())

	// Keep the backend warm independently of user traffic.
	worker.StartKeepAliveWorker(client)

	r := gin.Default()
	api.SetupDashboardRouter(r, client)

	log.Println("Dashboard listening on", cfg.Port)
	return r.Run(cfg.Port)
}

// resolveBackendURL picks the backend base URL: an explicit BACKEND_URL wins,
// otherwise the deployment hostname decides (loopback, static hosting, or
// own origin).
func resolveBackendURL(cfg config.Config) string {
	if cfg.BackendURL != "" {
		return cfg.BackendURL
	}
	hostname := cfg.PublicHostname
	if hostname == "" {
		hostname = "localhost"
	}
	origin := "http://" + hostname + cfg.Port
	return backend.ResolveBaseURL(hostname, origin)
}

package api

import (
	"github.com/gin-gonic/gin"

	handlers "quakewatch/internal/api/handlers"
	"quakewatch/internal/backend"
	"quakewatch/internal/relay"
)

// SetupDashboardRouter initializes the dashboard service routes
func SetupDashboardRouter(r *gin.Engine, client *backend.Client) {
	handlers.SetupDashboardHandlers(r.Group(""), client)
}

// SetupRelayRouter initializes the messaging relay operator routes
func SetupRelayRouter(r *gin.Engine, machine *relay.Machine) {
	handlers.SetupRelayHandlers(r.Group(""), machine)
}

package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"quakewatch/internal/relay"
)

// SetupRelayHandlers registers the messaging relay operator endpoints
func SetupRelayHandlers(router *gin.RouterGroup, machine *relay.Machine) {
	h := &relayHandlers{machine: machine}

	router.GET("/status", h.status)
	router.GET("/qr", h.qr)
	router.POST("/send", h.send)
	router.POST("/restart", h.restart)
	router.POST("/clear-session", h.clearSession)
}

type relayHandlers struct {
	machine *relay.Machine
}

func (h *relayHandlers) status(c *gin.Context) {
	c.JSON(http.StatusOK, h.machine.Status())
}

func (h *relayHandlers) qr(c *gin.Context) {
	qr, ok, msg := h.machine.Challenge()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"qr":           qr,
		"message":      msg,
		"instructions": "Open the app, go to Linked Devices and scan this code.",
	})
}

func (h *relayHandlers) send(c *gin.Context) {
	// Unready transport always wins over payload problems, so an operator
	// polling with garbage still learns the service is down.
	if !h.machine.Status().Ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error":   "transport not connected; pair with the QR code first",
		})
		return
	}

	var req struct {
		Number  string `json:"number"`
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Number == "" || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "number and message are required",
		})
		return
	}

	id, err := h.machine.Send(c.Request.Context(), req.Number, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, relay.ErrNotReady):
			c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": err.Error()})
		case errors.Is(err, relay.ErrBadNumber):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"messageId": id,
		"message":   "message sent",
	})
}

func (h *relayHandlers) restart(c *gin.Context) {
	log.Println("Relay restart endpoint called")
	h.machine.Restart()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "relay restarting...",
	})
}

func (h *relayHandlers) clearSession(c *gin.Context) {
	log.Println("Relay clear-session endpoint called")
	h.machine.ClearSession()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "session cleared; a new pairing code will be issued",
	})
}

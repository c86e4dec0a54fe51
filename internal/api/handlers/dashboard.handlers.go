package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"quakewatch/internal/backend"
	"quakewatch/internal/model"
	"quakewatch/internal/render"
)

// SetupDashboardHandlers registers the dashboard page and its JSON endpoints
func SetupDashboardHandlers(router *gin.RouterGroup, client *backend.Client) {
	h := &dashboardHandlers{
		client: client,
		page:   template.Must(template.New("dashboard").Parse(dashboardPage)),
	}

	router.GET("/", h.index)

	api := router.Group("/api")
	api.GET("/map", h.mapDocument)
	api.POST("/predict-risk", h.predictRisk)
	api.POST("/set-alert", h.setAlert)
	api.POST("/istanbul-alert", h.istanbulAlert)
	api.GET("/city-damage-analysis", h.cityDamage)
	api.GET("/istanbul-early-warning", h.istanbulWarning)
	api.GET("/turkey-early-warning", h.turkeyWarning)
	api.POST("/chatbot", h.chatbot)
	api.GET("/health", h.health)
}

type dashboardHandlers struct {
	client *backend.Client
	page   *template.Template
}

func (h *dashboardHandlers) index(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := h.page.Execute(c.Writer, gin.H{"Backend": h.client.BaseURL()}); err != nil {
		log.Printf("Dashboard page render failed: %v", err)
	}
}

// nearestFaultInfo annotates the viewer's distance to the closest fault.
type nearestFaultInfo struct {
	Name       string  `json:"name"`
	DistanceKm float64 `json:"distance_km"`
}

type mapResponse struct {
	*render.Document
	NearestFault *nearestFaultInfo `json:"nearest_fault,omitempty"`
}

// mapDocument runs one full refresh cycle: fetch the snapshot, build a
// complete replacement document. Warming-up backends produce a neutral
// waiting document, never an error.
func (h *dashboardHandlers) mapDocument(c *gin.Context) {
	viewer := viewerCoords(c)

	snapshot, err := h.client.FetchRisk(c.Request.Context())
	if err != nil {
		if errors.Is(err, backend.ErrWarmingUp) {
			c.JSON(http.StatusOK, mapResponse{Document: render.WarmingUp()})
			return
		}
		log.Printf("Risk fetch failed: %v", err)
		doc := render.WarmingUp()
		doc.List.Notice = ""
		doc.List.Error = "Could not reach the analysis server. Check that the backend is up."
		c.JSON(http.StatusOK, mapResponse{Document: doc})
		return
	}

	resp := mapResponse{Document: render.Build(snapshot, viewer)}
	if viewer != nil {
		if km, name, ok := render.NearestFault(*viewer, snapshot.FaultLines); ok {
			resp.NearestFault = &nearestFaultInfo{Name: name, DistanceKm: km}
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *dashboardHandlers) predictRisk(c *gin.Context) {
	var req struct {
		Lat   float64 `json:"lat"`
		Lon   float64 `json:"lon"`
		UseML *bool   `json:"use_ml"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	coords := model.Coordinates{Lat: req.Lat, Lon: req.Lon}
	if !coords.InRange() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coordinates out of range"})
		return
	}
	useML := true
	if req.UseML != nil {
		useML = *req.UseML
	}

	prediction, err := h.client.PredictRisk(c.Request.Context(), coords, useML)
	if err != nil {
		h.backendError(c, err)
		return
	}
	c.JSON(http.StatusOK, prediction)
}

func (h *dashboardHandlers) setAlert(c *gin.Context) {
	var req struct {
		Lat    float64 `json:"lat"`
		Lon    float64 `json:"lon"`
		Number string  `json:"number"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid request body"})
		return
	}
	coords := model.Coordinates{Lat: req.Lat, Lon: req.Lon}
	if !coords.InRange() {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "coordinates out of range"})
		return
	}
	if msg, ok := validNumber(req.Number); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": msg})
		return
	}

	ack, err := h.client.RegisterAlert(c.Request.Context(), coords, req.Number)
	if err != nil {
		h.backendError(c, err)
		return
	}
	c.JSON(http.StatusOK, ack)
}

func (h *dashboardHandlers) istanbulAlert(c *gin.Context) {
	var req struct {
		Number string   `json:"number"`
		Lat    *float64 `json:"lat"`
		Lon    *float64 `json:"lon"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid request body"})
		return
	}
	if msg, ok := validNumber(req.Number); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": msg})
		return
	}
	var coords *model.Coordinates
	if req.Lat != nil && req.Lon != nil {
		pair := model.Coordinates{Lat: *req.Lat, Lon: *req.Lon}
		if pair.InRange() {
			coords = &pair
		}
	}

	ack, err := h.client.RegisterIstanbulAlert(c.Request.Context(), req.Number, coords)
	if err != nil {
		h.backendError(c, err)
		return
	}
	c.JSON(http.StatusOK, ack)
}

func (h *dashboardHandlers) cityDamage(c *gin.Context) {
	report, err := h.client.CityDamageAnalysis(c.Request.Context())
	if err != nil {
		h.backendError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *dashboardHandlers) istanbulWarning(c *gin.Context) {
	status, err := h.client.IstanbulEarlyWarning(c.Request.Context())
	if err != nil {
		h.backendError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *dashboardHandlers) turkeyWarning(c *gin.Context) {
	status, err := h.client.TurkeyEarlyWarning(c.Request.Context())
	if err != nil {
		h.backendError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *dashboardHandlers) chatbot(c *gin.Context) {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"response": "Please write a message."})
		return
	}

	reply, err := h.client.Chatbot(c.Request.Context(), strings.TrimSpace(req.Message))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"response": "Connection problem. Please try again."})
		return
	}
	c.JSON(http.StatusOK, reply)
}

func (h *dashboardHandlers) health(c *gin.Context) {
	if err := h.client.Health(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"status": "error", "message": "analysis backend unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *dashboardHandlers) backendError(c *gin.Context, err error) {
	log.Printf("Backend call failed: %v", err)
	var statusErr *backend.StatusError
	if errors.As(err, &statusErr) {
		c.JSON(http.StatusBadGateway, gin.H{"error": statusErr.Error()})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": "analysis backend unreachable"})
}

// viewerCoords parses optional lat/lon query parameters. Invalid or partial
// pairs are ignored rather than rejected; the map simply skips the
// distance annotations.
func viewerCoords(c *gin.Context) *model.Coordinates {
	latStr, lonStr := c.Query("lat"), c.Query("lon")
	if latStr == "" || lonStr == "" {
		return nil
	}
	lat, err1 := strconv.ParseFloat(latStr, 64)
	lon, err2 := strconv.ParseFloat(lonStr, 64)
	if err1 != nil || err2 != nil {
		return nil
	}
	coords := model.Coordinates{Lat: lat, Lon: lon}
	if !coords.InRange() {
		return nil
	}
	return &coords
}

// validNumber applies the registration rules: required, country code with a
// leading plus.
func validNumber(number string) (string, bool) {
	trimmed := strings.TrimSpace(number)
	if trimmed == "" {
		return "phone number is required", false
	}
	if !strings.HasPrefix(trimmed, "+") {
		return "phone number must start with a country code, e.g. +90532xxxxxxx", false
	}
	return "", true
}

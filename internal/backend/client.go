package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"quakewatch/internal/model"
)

// ErrWarmingUp signals that the analysis backend answered with one of the
// tolerated transient statuses (cold start on the hosting platform). Callers
// surface a neutral waiting message instead of an error.
var ErrWarmingUp = errors.New("backend warming up")

// StatusError is returned for any non-2xx response outside the tolerated
// transient set.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned unexpected status %d", e.Code)
}

// Client issues JSON requests against the risk-analysis backend. Requests are
// fire-and-forget: no retry, no backoff, no deduplication.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

// BaseURL returns the resolved backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchRisk retrieves the current risk snapshot. Transient statuses
// (404/500/502/503) yield ErrWarmingUp rather than a hard failure.
func (c *Client) FetchRisk(ctx context.Context) (*model.RiskSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/risk", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusInternalServerError,
		http.StatusBadGateway, http.StatusServiceUnavailable:
		return nil, ErrWarmingUp
	default:
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &StatusError{Code: resp.StatusCode}
		}
	}

	var snapshot model.RiskSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("decode risk snapshot: %w", err)
	}
	return &snapshot, nil
}

// PredictRisk requests a risk prediction for the given coordinates.
func (c *Client) PredictRisk(ctx context.Context, coords model.Coordinates, useML bool) (*model.RiskPrediction, error) {
	body := map[string]interface{}{
		"lat":    coords.Lat,
		"lon":    coords.Lon,
		"use_ml": useML,
	}
	var prediction model.RiskPrediction
	if err := c.postJSON(ctx, "/api/predict-risk", body, &prediction); err != nil {
		return nil, err
	}
	return &prediction, nil
}

// RegisterAlert registers a phone number for earthquake notifications at the
// given location.
func (c *Client) RegisterAlert(ctx context.Context, coords model.Coordinates, number string) (*model.Ack, error) {
	body := map[string]interface{}{
		"lat":    coords.Lat,
		"lon":    coords.Lon,
		"number": number,
	}
	var ack model.Ack
	if err := c.postJSON(ctx, "/api/set-alert", body, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// RegisterIstanbulAlert registers a number for the Istanbul early-warning
// feed. Coordinates are optional; the backend falls back to the city center.
func (c *Client) RegisterIstanbulAlert(ctx context.Context, number string, coords *model.Coordinates) (*model.Ack, error) {
	body := map[string]interface{}{"number": number}
	if coords != nil {
		body["lat"] = coords.Lat
		body["lon"] = coords.Lon
	}
	var ack model.Ack
	if err := c.postJSON(ctx, "/api/istanbul-alert", body, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// CityDamageAnalysis retrieves the per-city risk and damage breakdown.
func (c *Client) CityDamageAnalysis(ctx context.Context) (*model.CityDamageReport, error) {
	var report model.CityDamageReport
	if err := c.getJSON(ctx, "/api/city-damage-analysis", &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// IstanbulEarlyWarning retrieves the Istanbul early-warning status.
func (c *Client) IstanbulEarlyWarning(ctx context.Context) (*model.WarningStatus, error) {
	var status model.WarningStatus
	if err := c.getJSON(ctx, "/api/istanbul-early-warning", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// TurkeyEarlyWarning retrieves the country-wide early-warning status.
func (c *Client) TurkeyEarlyWarning(ctx context.Context) (*model.WarningStatus, error) {
	var status model.WarningStatus
	if err := c.getJSON(ctx, "/api/turkey-early-warning", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Chatbot forwards a user message to the backend assistant.
func (c *Client) Chatbot(ctx context.Context, message string) (*model.ChatReply, error) {
	var reply model.ChatReply
	if err := c.postJSON(ctx, "/api/chatbot", map[string]string{"message": message}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// Health pings the backend's liveness endpoint. The response body is
// discarded; only reachability matters.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode}
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// Error payloads still carry a JSON body describing the failure; decode
	// them so callers can pass the message through.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusInternalServerError {
			if err := json.NewDecoder(resp.Body).Decode(out); err == nil {
				return nil
			}
		}
		return &StatusError{Code: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", req.URL.Path, err)
	}
	return nil
}

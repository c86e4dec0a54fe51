package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"quakewatch/internal/relay"
)

// stubTransport drives the machine without a real messaging session.
type stubTransport struct {
	events relay.Events
}

func (s *stubTransport) Initialize(ev relay.Events) error {
	s.events = ev
	return nil
}

func (s *stubTransport) Destroy() {}

func (s *stubTransport) Send(ctx context.Context, digits, body string) (string, error) {
	return "MSG-42", nil
}

func newRelayServer(t *testing.T) (*httptest.Server, *stubTransport) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	transport := &stubTransport{}
	delays := relay.Delays{Restart: time.Hour, Logout: time.Hour, Disconnect: time.Hour}
	machine := relay.NewMachine(transport, nil, "", delays)
	machine.Start()

	r := gin.New()
	SetupRelayHandlers(r.Group("/"), machine)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, transport
}

func postJSON(t *testing.T, url, body string) (int, map[string]interface{}) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var payload map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, payload
}

func TestSendUnavailableBeforePairing(t *testing.T) {
	t.Parallel()

	srv, _ := newRelayServer(t)

	// A malformed payload still gets 503 while the transport is down.
	code, payload := postJSON(t, srv.URL+"/send", `{"number": "", "message": ""}`)
	if code != http.StatusServiceUnavailable {
		t.Errorf("status: got %d, want 503", code)
	}
	if payload["success"] != false {
		t.Errorf("success: got %v, want false", payload["success"])
	}
}

func TestSendValidation(t *testing.T) {
	t.Parallel()

	srv, transport := newRelayServer(t)
	transport.events.Ready()

	code, _ := postJSON(t, srv.URL+"/send", `{"number": "+905320000000"}`)
	if code != http.StatusBadRequest {
		t.Errorf("missing message: got %d, want 400", code)
	}

	code, _ = postJSON(t, srv.URL+"/send", `{"number": "...", "message": "hi"}`)
	if code != http.StatusBadRequest {
		t.Errorf("unparseable number: got %d, want 400", code)
	}
}

func TestSendDelivers(t *testing.T) {
	t.Parallel()

	srv, transport := newRelayServer(t)
	transport.events.Ready()

	code, payload := postJSON(t, srv.URL+"/send", `{"number": "+905320000000", "message": "alert"}`)
	if code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", code)
	}
	if payload["messageId"] != "MSG-42" {
		t.Errorf("messageId: got %v, want MSG-42", payload["messageId"])
	}
}

func TestStatusAndQREndpoints(t *testing.T) {
	t.Parallel()

	srv, transport := newRelayServer(t)

	resp, err := http.Get(srv.URL + "/status")
	if err != nil {
		t.Fatal(err)
	}
	var status map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if status["ready"] != false {
		t.Errorf("ready: got %v, want false", status["ready"])
	}

	code, payload := getJSONMap(t, srv.URL+"/qr")
	if code != http.StatusOK || payload["success"] != false {
		t.Errorf("qr before pairing: code=%d success=%v, want 200/false", code, payload["success"])
	}

	transport.events.QR("pairing-payload")
	_, payload = getJSONMap(t, srv.URL+"/qr")
	if payload["success"] != true {
		t.Fatalf("qr after pairing event: success=%v", payload["success"])
	}
	if qr, _ := payload["qr"].(string); !strings.HasPrefix(qr, "data:image/png;base64,") {
		t.Errorf("qr payload is not a data URL")
	}
}

func getJSONMap(t *testing.T, url string) (int, map[string]interface{}) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var payload map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, payload
}

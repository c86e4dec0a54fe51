package relay

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"quakewatch/internal/config"
)

// ErrNotReady is returned by Send while the session is in any state other
// than READY.
var ErrNotReady = errors.New("transport not connected; pair with the QR code first")

// Events carries the transport callbacks into the state machine. The
// transport invokes these from its own goroutines; the machine serializes
// them internally.
type Events struct {
	QR            func(payload string)
	Authenticated func()
	Ready         func()
	AuthFailure   func(reason string)
	Disconnected  func(reason string, loggedOut bool)
	Error         func(err error)
}

// Transport is the boundary to the chat automation library. Initialize
// constructs a fresh underlying session; Destroy tears the current one down;
// Send delivers one message to a normalized address.
type Transport interface {
	Initialize(ev Events) error
	Destroy()
	Send(ctx context.Context, digits, body string) (messageID string, err error)
}

// Delays groups the reconnection timings so tests can shrink them.
type Delays struct {
	Restart    time.Duration
	Logout     time.Duration
	Disconnect time.Duration
}

// DefaultDelays returns the production reconnection timings.
func DefaultDelays() Delays {
	return Delays{
		Restart:    config.RestartDelay,
		Logout:     config.LogoutRestartDelay,
		Disconnect: config.DisconnectRestartDelay,
	}
}

// Machine owns the one mutable session record and drives every state
// transition. Transport callbacks and operator commands all funnel through
// the same mutex, so a restart arriving mid-re-pair cannot double-initialize.
type Machine struct {
	mu        sync.Mutex
	session   Session
	transport Transport
	journal   Journal
	credDir   string
	delays    Delays

	// pending is the scheduled re-initialization, if any. Manual commands
	// cancel it before acting so two initialization attempts never overlap.
	pending *time.Timer
}

// NewMachine creates a machine around the given transport. credDir is the
// on-disk credential cache owned exclusively by this machine.
func NewMachine(transport Transport, journal Journal, credDir string, delays Delays) *Machine {
	if journal == nil {
		journal = NopJournal{}
	}
	return &Machine{
		session:   Session{State: StateUninitialized},
		transport: transport,
		journal:   journal,
		credDir:   credDir,
		delays:    delays,
	}
}

// Start performs the initial session construction. Called once at boot.
func (m *Machine) Start() {
	m.initialize()
}

// Status returns a snapshot of the session. Pure read, no side effects.
func (m *Machine) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Status{
		Ready:          m.session.State == StateReady,
		Authenticated:  m.session.State == StateReady || m.session.State == StateAuthenticated,
		HasQR:          m.session.QRDataURL != "",
		QRRefreshCount: m.session.RefreshCount,
		SentCount:      m.journal.SentCount(),
		Error:          m.session.LastError,
	}
	switch m.session.State {
	case StateReady:
		s.Message = "connected and ready to send"
	case StateQRPending:
		s.Message = "pairing code waiting to be scanned"
	case StateAuthenticated:
		s.Message = "authenticated, waiting for the transport to come up"
	case StateAuthFailed:
		s.Message = "authentication rejected; re-pairing from scratch"
	case StateDisconnected:
		s.Message = "disconnected; reconnecting shortly"
	default:
		s.Message = "initializing"
	}
	return s
}

// Challenge returns the current pairing artifact. ok is false when no
// challenge is available; msg explains why.
func (m *Machine) Challenge() (qr string, ok bool, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session.QRDataURL != "" {
		return m.session.QRDataURL, true, "Scan the code from the app within 20 seconds."
	}
	if m.session.State == StateReady {
		return "", false, "Already connected. No pairing code needed."
	}
	return "", false, "Pairing code not ready yet. Please wait..."
}

// Send delivers one message. Fails with ErrNotReady unless the session is
// READY; transport failures are wrapped with the underlying message.
func (m *Machine) Send(ctx context.Context, number, body string) (string, error) {
	m.mu.Lock()
	if m.session.State != StateReady {
		m.mu.Unlock()
		return "", ErrNotReady
	}
	transport := m.transport
	m.mu.Unlock()

	digits, err := NormalizeNumber(number)
	if err != nil {
		return "", err
	}

	id, err := transport.Send(ctx, digits, body)
	if err != nil {
		m.recordError(err)
		return "", fmt.Errorf("message delivery failed: %w", err)
	}

	log.Printf("[relay] message delivered to %s", Address(digits))
	m.journal.Record(id, Address(digits))
	return id, nil
}

// Restart destroys the current session object and schedules a fresh
// initialization. Cached credentials are kept.
func (m *Machine) Restart() {
	m.mu.Lock()
	m.cancelPendingLocked()
	m.session = Session{State: StateInitializing}
	transport := m.transport
	m.mu.Unlock()

	log.Println("[relay] restart requested; destroying session")
	transport.Destroy()
	m.schedule(m.delays.Restart)
}

// ClearSession destroys the session, purges the on-disk credential cache and
// schedules a fresh initialization. The next session must re-pair.
func (m *Machine) ClearSession() {
	m.mu.Lock()
	m.cancelPendingLocked()
	m.session = Session{State: StateInitializing}
	transport := m.transport
	m.mu.Unlock()

	log.Println("[relay] session clear requested; destroying session and purging credentials")
	transport.Destroy()
	m.purgeCredentials()
	m.schedule(m.delays.Restart)
}

// EventSink returns the callback set handed to the transport on every
// initialization.
func (m *Machine) EventSink() Events {
	return Events{
		QR:            m.onQR,
		Authenticated: m.onAuthenticated,
		Ready:         m.onReady,
		AuthFailure:   m.onAuthFailure,
		Disconnected:  m.onDisconnected,
		Error:         func(err error) { m.recordError(err) },
	}
}

func (m *Machine) onQR(payload string) {
	encoded, err := EncodeQR(payload)

	m.mu.Lock()
	m.session.State = StateQRPending
	m.session.RefreshCount++
	count := m.session.RefreshCount
	if err != nil {
		// Keep the raw payload; the operator can still pair with it.
		m.session.QRDataURL = payload
		m.session.LastError = err.Error()
	} else {
		m.session.QRDataURL = encoded
	}
	m.mu.Unlock()

	log.Printf("[relay] pairing code issued (refresh %d); scan it from the app", count)
}

func (m *Machine) onAuthenticated() {
	m.mu.Lock()
	if m.session.State != StateReady {
		m.session.State = StateAuthenticated
	}
	m.mu.Unlock()

	log.Println("[relay] authentication successful")
}

func (m *Machine) onReady() {
	m.mu.Lock()
	m.session.State = StateReady
	m.session.QRDataURL = ""
	m.session.RefreshCount = 0
	m.session.LastError = ""
	m.mu.Unlock()

	log.Println("[relay] transport ready; sends enabled")
}

func (m *Machine) onAuthFailure(reason string) {
	m.mu.Lock()
	m.session.State = StateAuthFailed
	m.session.LastError = reason
	m.mu.Unlock()

	// A stale invalid credential would loop forever; purge before retrying.
	log.Printf("[relay] authentication failed: %s", reason)
	m.purgeCredentials()
	m.schedule(m.delays.Logout)
}

func (m *Machine) onDisconnected(reason string, loggedOut bool) {
	m.mu.Lock()
	m.session.State = StateDisconnected
	m.session.QRDataURL = ""
	m.mu.Unlock()

	log.Printf("[relay] disconnected: %s", reason)
	if loggedOut {
		// A logout must re-pair from scratch, never rejoin a stale session.
		m.purgeCredentials()
		m.schedule(m.delays.Logout)
		return
	}
	m.schedule(m.delays.Disconnect)
}

func (m *Machine) recordError(err error) {
	m.mu.Lock()
	m.session.LastError = err.Error()
	m.mu.Unlock()

	log.Printf("[relay] transport error: %v", err)
}

// initialize replaces the session record and asks the transport for a fresh
// underlying session. The transport call happens outside the lock because
// it may emit events synchronously.
func (m *Machine) initialize() {
	m.mu.Lock()
	m.cancelPendingLocked()
	m.session = Session{State: StateInitializing}
	transport := m.transport
	m.mu.Unlock()

	log.Println("[relay] initializing session")
	if err := transport.Initialize(m.EventSink()); err != nil {
		m.recordError(err)
	}
}

// schedule arms the delayed re-initialization, replacing any pending one.
func (m *Machine) schedule(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cancelPendingLocked()
	m.pending = time.AfterFunc(d, m.initialize)
}

func (m *Machine) cancelPendingLocked() {
	if m.pending != nil {
		m.pending.Stop()
		m.pending = nil
	}
}

func (m *Machine) purgeCredentials() {
	if m.credDir == "" {
		return
	}
	if err := os.RemoveAll(m.credDir); err != nil {
		log.Printf("[relay] failed to purge credential cache %s: %v", m.credDir, err)
		return
	}
	log.Printf("[relay] credential cache %s purged", m.credDir)
}

package relay

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	waLog "go.mau.fi/whatsmeow/util/log"
	"google.golang.org/protobuf/proto"
)

// WhatsmeowTransport drives a WhatsApp session through whatsmeow. The state
// machine only ever sees the Transport interface; all library types stay in
// this file.
type WhatsmeowTransport struct {
	mu        sync.Mutex
	credDir   string
	container *sqlstore.Container
	client    *whatsmeow.Client
	cancel    context.CancelFunc
}

// NewWhatsmeowTransport creates a transport whose credential store lives
// under credDir.
func NewWhatsmeowTransport(credDir string) *WhatsmeowTransport {
	return &WhatsmeowTransport{credDir: credDir}
}

// Initialize builds a fresh client from the on-disk credential store and
// starts connecting. Pairing challenges and lifecycle changes are forwarded
// through ev.
func (t *WhatsmeowTransport) Initialize(ev Events) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := os.MkdirAll(t.credDir, 0o700); err != nil {
		return fmt.Errorf("create credential dir: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on", filepath.Join(t.credDir, "session.db"))
	container, err := sqlstore.New(ctx, "sqlite3", dsn, waLog.Stdout("relay-store", "WARN", false))
	if err != nil {
		cancel()
		return fmt.Errorf("open credential store: %w", err)
	}

	device, err := container.GetFirstDevice(ctx)
	if err != nil {
		container.Close()
		cancel()
		return fmt.Errorf("load device: %w", err)
	}

	client := whatsmeow.NewClient(device, waLog.Stdout("relay-client", "WARN", false))
	client.AddEventHandler(func(evt interface{}) {
		switch v := evt.(type) {
		case *events.Connected:
			ev.Ready()
		case *events.PairSuccess:
			ev.Authenticated()
		case *events.PairError:
			ev.AuthFailure(v.Error.Error())
		case *events.LoggedOut:
			ev.Disconnected("logged out from the phone", true)
		case *events.Disconnected:
			ev.Disconnected("connection closed", false)
		case *events.StreamReplaced:
			ev.Disconnected("stream replaced by another session", false)
		case *events.ConnectFailure:
			ev.Error(fmt.Errorf("connect failure: %s", v.Message))
		}
	})

	if client.Store.ID == nil {
		// No stored credentials: surface pairing challenges until one is
		// scanned or the channel closes.
		qrChan, err := client.GetQRChannel(ctx)
		if err != nil {
			container.Close()
			cancel()
			return fmt.Errorf("open pairing channel: %w", err)
		}
		go func() {
			for item := range qrChan {
				switch item.Event {
				case "code":
					ev.QR(item.Code)
				case "timeout":
					ev.Error(fmt.Errorf("pairing timed out before the code was scanned"))
				}
			}
		}()
	}

	if err := client.Connect(); err != nil {
		container.Close()
		cancel()
		return fmt.Errorf("connect: %w", err)
	}

	t.container = container
	t.client = client
	t.cancel = cancel
	return nil
}

// Destroy tears down the current client and credential store handle. The
// on-disk credentials themselves are untouched.
func (t *WhatsmeowTransport) Destroy() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.client != nil {
		t.client.Disconnect()
		t.client = nil
	}
	if t.container != nil {
		t.container.Close()
		t.container = nil
	}
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

// Send delivers a plain text message to the given normalized number.
func (t *WhatsmeowTransport) Send(ctx context.Context, digits, body string) (string, error) {
	t.mu.Lock()
	client := t.client
	t.mu.Unlock()

	if client == nil {
		return "", ErrNotReady
	}

	jid := types.NewJID(digits, types.DefaultUserServer)
	resp, err := client.SendMessage(ctx, jid, &waE2E.Message{
		Conversation: proto.String(body),
	})
	if err != nil {
		return "", err
	}
	return string(resp.ID), nil
}

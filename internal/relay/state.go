package relay

// State is the connection lifecycle state of the messaging session.
type State int

const (
	StateUninitialized State = iota
	StateInitializing
	StateQRPending
	StateAuthenticated
	StateReady
	StateDisconnected
	StateAuthFailed
)

func (s State) String() string {
	return [...]string{
		"UNINITIALIZED",
		"INITIALIZING",
		"QR_PENDING",
		"AUTHENTICATED",
		"READY",
		"DISCONNECTED",
		"AUTH_FAILED",
	}[s]
}

// Session is the single process-wide mutable session record. It is replaced
// wholesale on every restart or session clear; nothing survives the swap.
type Session struct {
	State        State
	QRDataURL    string
	RefreshCount int
	LastError    string
}

// Status is the read-only view exposed over the status endpoint.
type Status struct {
	Ready          bool   `json:"ready"`
	Authenticated  bool   `json:"authenticated"`
	HasQR          bool   `json:"hasQr"`
	QRRefreshCount int    `json:"qrRefreshCount"`
	SentCount      int64  `json:"sentCount"`
	Error          string `json:"error,omitempty"`
	Message        string `json:"message"`
}

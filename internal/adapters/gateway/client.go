package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"runtime"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/renato0307/clawusage/internal/domain"
	"github.com/renato0307/clawusage/internal/logging"
	"github.com/renato0307/clawusage/internal/ports"
	"github.com/renato0307/clawusage/internal/version"
)

const (
	clientID        = "clawusage"
	clientMode      = "cli"
	methodConnect   = "connect"
	methodUsageCost = "usage.cost"
	protocolVersion = 3
	roleOperator    = "operator"
	scopeRead       = "operator.read"
)

// Close codes a gateway uses to refuse a handshake for auth reasons
const (
	closeUnauthorized = 4001
	closeForbidden    = 4003
)

// authErrorCodes are response error codes treated as credential rejection
var authErrorCodes = map[string]bool{
	"AUTH_FAILED":   true,
	"AUTH_REQUIRED": true,
	"FORBIDDEN":     true,
	"INVALID_TOKEN": true,
	"UNAUTHORIZED":  true,
}

// Config holds the timeouts applied to gateway operations
type Config struct {
	ConnectTimeout time.Duration // Dial plus connect handshake
	RequestTimeout time.Duration // Per request after connect
}

// Client dials gateway sessions over WebSocket
type Client struct {
	config Config
	dialer *websocket.Dialer
}

// Verify interface compliance at compile time
var _ ports.GatewayDialer = (*Client)(nil)

// NewClient creates a new Client
func NewClient(config Config) *Client {
	return &Client{
		config: config,
		dialer: &websocket.Dialer{
			HandshakeTimeout: config.ConnectTimeout,
			Proxy:            http.ProxyFromEnvironment,
		},
	}
}

// Connect implements GatewayDialer.Connect
func (c *Client) Connect(ctx context.Context, address string, creds ports.GatewayCredentials) (ports.GatewaySession, error) {
	auth, err := authFor(creds)
	if err != nil {
		return nil, err
	}

	wsURL, err := normalizeURL(address)
	if err != nil {
		return nil, domain.NewConnectionError("connect", "invalid gateway address "+address, err).
			WithSuggestion("Use a ws:// or wss:// URL, e.g. ws://127.0.0.1:18789")
	}

	if c.config.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.ConnectTimeout)
		defer cancel()
	}

	logging.Logger.Debug("Dialing gateway", "url", wsURL, "auth_mode", creds.Mode)

	header := http.Header{}
	header.Set("User-Agent", fmt.Sprintf("%s/%s", clientID, version.Version))

	conn, resp, err := c.dialer.DialContext(ctx, wsURL, header)
	if err != nil {
		if resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
			return nil, domain.NewAuthError("connect", fmt.Sprintf("gateway refused the upgrade with %s", resp.Status), err).
				WithSuggestion(credentialHint(creds.Mode))
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, domain.NewConnectionError("connect", fmt.Sprintf("no handshake from %s within %s", wsURL, c.config.ConnectTimeout), err)
		}
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, fmt.Errorf("connect interrupted: %w", ctx.Err())
		}
		return nil, domain.NewConnectionError("connect", "gateway unreachable at "+wsURL, err).
			WithSuggestion("Check that the gateway is running and the address is correct")
	}

	session := newSession(conn, c.config.RequestTimeout)

	params := connectParams{
		Auth: auth,
		Client: clientInfo{
			ID:       clientID,
			Mode:     clientMode,
			Platform: runtime.GOOS,
			Version:  version.Version,
		},
		MaxProtocol: protocolVersion,
		MinProtocol: protocolVersion,
		Role:        roleOperator,
		Scopes:      []string{scopeRead},
	}

	if _, err := session.call(ctx, methodConnect, params); err != nil {
		session.Close()
		return nil, connectError(err, creds.Mode, c.config.ConnectTimeout)
	}

	logging.Logger.Info("Gateway session established", "url", wsURL)
	return session, nil
}

// connectError maps a failed connect request onto the error taxonomy
func connectError(err error, mode ports.AuthMode, timeout time.Duration) error {
	var rpcErr *RPCError
	if errors.As(err, &rpcErr) {
		if isAuthRejection(rpcErr) {
			return domain.NewAuthError("connect", "gateway rejected credentials", rpcErr).
				WithSuggestion(credentialHint(mode))
		}
		return domain.NewConnectionError("connect", "gateway refused the session", rpcErr)
	}

	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) {
		switch closeErr.Code {
		case websocket.ClosePolicyViolation, closeUnauthorized, closeForbidden:
			return domain.NewAuthError("connect", "gateway closed the connection during authentication", closeErr).
				WithSuggestion(credentialHint(mode))
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return domain.NewConnectionError("connect", fmt.Sprintf("handshake not completed within %s", timeout), err)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("connect interrupted: %w", err)
	}
	return domain.NewConnectionError("connect", "handshake failed", err)
}

func isAuthRejection(e *RPCError) bool {
	if authErrorCodes[strings.ToUpper(e.Code)] {
		return true
	}
	msg := strings.ToLower(e.Message)
	return strings.Contains(msg, "unauthorized") || strings.Contains(msg, "auth")
}

// authFor builds the connect auth block, rejecting missing secrets before dialing
func authFor(creds ports.GatewayCredentials) (*connectAuth, error) {
	switch creds.Mode {
	case ports.AuthModeNone:
		return nil, nil
	case ports.AuthModePassword:
		if creds.Secret == "" {
			return nil, domain.NewAuthError("connect", "no gateway password provided", nil).
				WithSuggestion(credentialHint(creds.Mode))
		}
		return &connectAuth{Password: creds.Secret}, nil
	case ports.AuthModeToken, "":
		if creds.Secret == "" {
			return nil, domain.NewAuthError("connect", "no gateway token provided", nil).
				WithSuggestion(credentialHint(ports.AuthModeToken))
		}
		return &connectAuth{Token: creds.Secret}, nil
	}
	return nil, domain.NewAuthError("connect", fmt.Sprintf("unsupported auth mode %q", creds.Mode), nil)
}

func credentialHint(mode ports.AuthMode) string {
	if mode == ports.AuthModePassword {
		return "Set OPENCLAW_PASSWORD to the gateway password"
	}
	return "Set OPENCLAW_TOKEN to a valid gateway token"
}

// normalizeURL accepts ws(s)://, http(s):// or a bare host:port
func normalizeURL(address string) (string, error) {
	if address == "" {
		return "", errors.New("empty address")
	}
	if !strings.Contains(address, "://") {
		address = "ws://" + address
	}

	u, err := url.Parse(address)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "ws", "wss":
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", errors.New("missing host")
	}
	return u.String(), nil
}

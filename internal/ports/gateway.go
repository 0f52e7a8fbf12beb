package ports

import (
	"context"

	"github.com/renato0307/clawusage/internal/domain"
)

// AuthMode selects how the collector authenticates to the gateway
type AuthMode string

const (
	AuthModeNone     AuthMode = "none"
	AuthModePassword AuthMode = "password"
	AuthModeToken    AuthMode = "token"
)

// GatewayCredentials is the secret presented during the connect handshake
type GatewayCredentials struct {
	Mode   AuthMode
	Secret string // Token or password, never persisted
}

// GatewayDialer opens authenticated sessions to a gateway
type GatewayDialer interface {
	// Connect dials address and completes the authentication handshake
	Connect(ctx context.Context, address string, creds GatewayCredentials) (GatewaySession, error)
}

// GatewaySession is an authenticated connection to the gateway.
// It must be closed by the caller on every exit path.
type GatewaySession interface {
	// DailyUsage requests per-day usage for the trailing window of days.
	// Records are returned as the gateway reports them, without ordering guarantees.
	DailyUsage(ctx context.Context, days int) ([]domain.UsageRecord, error)

	Close() error
}

package gateway

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/clawusage/internal/domain"
	"github.com/renato0307/clawusage/internal/ports"
)

const testToken = "secret-token"

const threeDaysPayload = `{
	"updatedAt": 1760000000000,
	"days": 3,
	"daily": [
		{"date": "2026-10-17", "input": 100, "output": 50, "cacheRead": 10, "cacheWrite": 5, "totalTokens": 165, "totalCost": 0.12},
		{"date": "2026-10-18", "input": 200, "output": 80, "cacheRead": 0, "cacheWrite": 0, "totalTokens": 280, "totalCost": 0.2},
		{"date": "2026-10-19", "totalTokens": 0, "totalCost": 0}
	],
	"totals": {"totalTokens": 445}
}`

func testConfig() Config {
	return Config{ConnectTimeout: 2 * time.Second, RequestTimeout: 2 * time.Second}
}

func tokenCreds(secret string) ports.GatewayCredentials {
	return ports.GatewayCredentials{Mode: ports.AuthModeToken, Secret: secret}
}

func TestConnect_FetchesDailyUsage(t *testing.T) {
	g, addr := newFakeGateway(t, &fakeGateway{token: testToken, usagePayload: threeDaysPayload, sendChallenge: true})

	session, err := NewClient(testConfig()).Connect(context.Background(), addr, tokenCreds(testToken))
	require.NoError(t, err)
	defer session.Close()

	records, err := session.DailyUsage(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "2026-10-17", records[0].DateString())
	assert.Equal(t, int64(165), records[0].TokenCount)
	assert.Equal(t, int64(100), records[0].InputTokens)
	assert.Equal(t, int64(50), records[0].OutputTokens)
	assert.Equal(t, int64(10), records[0].CacheReadTokens)
	assert.Equal(t, int64(5), records[0].CacheWriteTokens)
	assert.InDelta(t, 0.12, records[0].TotalCost, 1e-9)
	assert.Equal(t, int64(0), records[2].TokenCount)

	reqs := g.received()
	require.Len(t, reqs, 2)
	assert.Equal(t, methodConnect, reqs[0].Method)
	assert.Equal(t, frameRequest, reqs[0].Type)

	var params connectParams
	require.NoError(t, json.Unmarshal(reqs[0].Params, &params))
	assert.Equal(t, protocolVersion, params.MinProtocol)
	assert.Equal(t, protocolVersion, params.MaxProtocol)
	assert.Equal(t, roleOperator, params.Role)
	assert.Equal(t, []string{scopeRead}, params.Scopes)
	assert.Equal(t, clientID, params.Client.ID)
	require.NotNil(t, params.Auth)
	assert.Equal(t, testToken, params.Auth.Token)

	assert.Equal(t, methodUsageCost, reqs[1].Method)
	assert.JSONEq(t, `{"days":3}`, string(reqs[1].Params))
	assert.NotEqual(t, reqs[0].ID, reqs[1].ID)
}

func TestConnect_PasswordMode(t *testing.T) {
	g, addr := newFakeGateway(t, &fakeGateway{usagePayload: `{"daily":[]}`})

	session, err := NewClient(testConfig()).Connect(context.Background(), addr,
		ports.GatewayCredentials{Mode: ports.AuthModePassword, Secret: "hunter2"})
	require.NoError(t, err)
	defer session.Close()

	var params connectParams
	require.NoError(t, json.Unmarshal(g.received()[0].Params, &params))
	require.NotNil(t, params.Auth)
	assert.Equal(t, "hunter2", params.Auth.Password)
	assert.Empty(t, params.Auth.Token)
}

func TestConnect_MissingTokenFailsBeforeDialing(t *testing.T) {
	g, addr := newFakeGateway(t, &fakeGateway{token: testToken})

	session, err := NewClient(testConfig()).Connect(context.Background(), addr, tokenCreds(""))
	assert.Nil(t, session)
	require.ErrorIs(t, err, domain.ErrAuth)
	assert.Contains(t, domain.SuggestionOf(err), "OPENCLAW_TOKEN")
	assert.Empty(t, g.received())
}

func TestConnect_RejectedToken(t *testing.T) {
	_, addr := newFakeGateway(t, &fakeGateway{token: testToken})

	_, err := NewClient(testConfig()).Connect(context.Background(), addr, tokenCreds("wrong"))
	require.ErrorIs(t, err, domain.ErrAuth)
	assert.NotErrorIs(t, err, domain.ErrConnection)
}

func TestConnect_AuthCloseCode(t *testing.T) {
	for _, code := range []int{closeUnauthorized, closeForbidden, 1008} {
		_, addr := newFakeGateway(t, &fakeGateway{closeCode: code})

		_, err := NewClient(testConfig()).Connect(context.Background(), addr, tokenCreds(testToken))
		assert.ErrorIs(t, err, domain.ErrAuth, "close code %d", code)
	}
}

func TestConnect_UpgradeRefused(t *testing.T) {
	_, addr := newFakeGateway(t, &fakeGateway{upgradeStatus: 401})

	_, err := NewClient(testConfig()).Connect(context.Background(), addr, tokenCreds(testToken))
	require.ErrorIs(t, err, domain.ErrAuth)
}

func TestConnect_NonAuthRejectionIsConnectionError(t *testing.T) {
	_, addr := newFakeGateway(t, &fakeGateway{
		connectError: &RPCError{Code: "PROTOCOL_MISMATCH", Message: "protocol 3 not supported"},
	})

	_, err := NewClient(testConfig()).Connect(context.Background(), addr, tokenCreds(testToken))
	require.ErrorIs(t, err, domain.ErrConnection)
	assert.Contains(t, err.Error(), "protocol 3 not supported")
}

func TestConnect_Unreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	_, err = NewClient(testConfig()).Connect(context.Background(), "ws://"+addr, tokenCreds(testToken))
	require.ErrorIs(t, err, domain.ErrConnection)
	assert.NotEmpty(t, domain.SuggestionOf(err))
}

func TestConnect_InvalidAddress(t *testing.T) {
	_, err := NewClient(testConfig()).Connect(context.Background(), "ftp://example.com", tokenCreds(testToken))
	require.ErrorIs(t, err, domain.ErrConnection)
}

func TestConnect_HandshakeTimeout(t *testing.T) {
	_, addr := newFakeGateway(t, &fakeGateway{silentConnect: true})

	cfg := testConfig()
	cfg.ConnectTimeout = 100 * time.Millisecond

	start := time.Now()
	_, err := NewClient(cfg).Connect(context.Background(), addr, tokenCreds(testToken))
	require.ErrorIs(t, err, domain.ErrConnection)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestDailyUsage_Timeout(t *testing.T) {
	_, addr := newFakeGateway(t, &fakeGateway{usagePayload: `{"daily":[]}`, usageDelay: 500 * time.Millisecond})

	cfg := testConfig()
	cfg.RequestTimeout = 50 * time.Millisecond

	session, err := NewClient(cfg).Connect(context.Background(), addr, tokenCreds(testToken))
	require.NoError(t, err)
	defer session.Close()

	_, err = session.DailyUsage(context.Background(), 7)
	require.ErrorIs(t, err, domain.ErrTimeout)
}

func TestDailyUsage_CanceledIsNotAConnectionFailure(t *testing.T) {
	_, addr := newFakeGateway(t, &fakeGateway{usagePayload: `{"daily":[]}`, usageDelay: 500 * time.Millisecond})

	session, err := NewClient(testConfig()).Connect(context.Background(), addr, tokenCreds(testToken))
	require.NoError(t, err)
	defer session.Close()

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	_, err = session.DailyUsage(ctx, 7)
	require.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, domain.ErrConnection)
	assert.NotErrorIs(t, err, domain.ErrTimeout)
	assert.Contains(t, err.Error(), "interrupted")
}

func TestConnect_CanceledBeforeDial(t *testing.T) {
	_, addr := newFakeGateway(t, &fakeGateway{usagePayload: `{"daily":[]}`})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(testConfig()).Connect(ctx, addr, tokenCreds(testToken))
	require.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, domain.ErrConnection)
}

func TestDailyUsage_MissingDailyField(t *testing.T) {
	_, addr := newFakeGateway(t, &fakeGateway{usagePayload: `{"totals":{"totalTokens":5}}`})

	session, err := NewClient(testConfig()).Connect(context.Background(), addr, tokenCreds(testToken))
	require.NoError(t, err)
	defer session.Close()

	_, err = session.DailyUsage(context.Background(), 7)
	require.ErrorIs(t, err, domain.ErrProtocol)
	assert.Contains(t, err.Error(), `"totals"`)
}

func TestDailyUsage_RPCError(t *testing.T) {
	_, addr := newFakeGateway(t, &fakeGateway{usageError: &RPCError{Code: "UNAVAILABLE", Message: "usage store offline"}})

	session, err := NewClient(testConfig()).Connect(context.Background(), addr, tokenCreds(testToken))
	require.NoError(t, err)
	defer session.Close()

	_, err = session.DailyUsage(context.Background(), 7)
	require.ErrorIs(t, err, domain.ErrProtocol)
	assert.Contains(t, err.Error(), "usage store offline")
}

func TestSession_CloseIsIdempotent(t *testing.T) {
	_, addr := newFakeGateway(t, &fakeGateway{usagePayload: `{"daily":[]}`})

	session, err := NewClient(testConfig()).Connect(context.Background(), addr, tokenCreds(testToken))
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		session.Close()
		session.Close()
	})

	_, err = session.DailyUsage(context.Background(), 1)
	assert.Error(t, err)
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "ws://127.0.0.1:18789", want: "ws://127.0.0.1:18789"},
		{in: "wss://gw.example.com/ws", want: "wss://gw.example.com/ws"},
		{in: "http://localhost:18789", want: "ws://localhost:18789"},
		{in: "https://gw.example.com", want: "wss://gw.example.com"},
		{in: "127.0.0.1:18789", want: "ws://127.0.0.1:18789"},
		{in: "", wantErr: true},
		{in: "ftp://host", wantErr: true},
		{in: "ws://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := normalizeURL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsAuthRejection(t *testing.T) {
	assert.True(t, isAuthRejection(&RPCError{Code: "UNAUTHORIZED"}))
	assert.True(t, isAuthRejection(&RPCError{Code: "invalid_token"}))
	assert.True(t, isAuthRejection(&RPCError{Code: "X", Message: "Unauthorized: bad token"}))
	assert.False(t, isAuthRejection(&RPCError{Code: "PROTOCOL_MISMATCH", Message: "protocol 3 not supported"}))
}

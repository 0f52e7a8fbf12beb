package config

import "time"

// Gateway is the fully resolved gateway configuration for one invocation
type Gateway struct {
	AuthMode       string
	ConnectTimeout time.Duration
	RequestTimeout time.Duration
	URL            string
}

// ResolveGateway merges config.toml over openclaw.json over defaults.
// Flags and environment are applied by the caller on top of the result.
func ResolveGateway(settings *Settings, openclaw *OpenClawConfig) Gateway {
	gw := Gateway{
		AuthMode:       DefaultAuthMode,
		ConnectTimeout: DefaultConnectTimeout,
		RequestTimeout: DefaultRequestTimeout,
		URL:            DefaultGatewayURL,
	}

	if url := openclaw.URL(); url != "" {
		gw.URL = url
	}
	if mode := openclaw.AuthMode(); mode != "" && ValidateAuthMode(mode) == nil {
		gw.AuthMode = mode
	}

	if settings == nil {
		return gw
	}
	if settings.Gateway.URL != "" {
		gw.URL = settings.Gateway.URL
	}
	if settings.Gateway.AuthMode != "" {
		gw.AuthMode = settings.Gateway.AuthMode
	}
	if settings.Gateway.ConnectTimeout != nil && settings.Gateway.ConnectTimeout.Duration > 0 {
		gw.ConnectTimeout = settings.Gateway.ConnectTimeout.Duration
	}
	if settings.Gateway.RequestTimeout != nil && settings.Gateway.RequestTimeout.Duration > 0 {
		gw.RequestTimeout = settings.Gateway.RequestTimeout.Duration
	}
	return gw
}

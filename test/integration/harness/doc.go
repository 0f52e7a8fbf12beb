// Package harness provides utilities for integration testing the clawusage CLI.
// It handles binary compilation, environment isolation, a fake gateway and command execution.
//
// Environment variables managed:
//   - CLAWUSAGE_HOME: Isolated per test (temp directory)
//   - CLAWUSAGE_DEBUG: Set to false so config.toml cannot turn logging on
//   - OPENCLAW_CONFIG_PATH: Points inside the temp home so the user's gateway config is ignored
//   - OPENCLAW_TOKEN, OPENCLAW_PASSWORD, OPENCLAW_GATEWAY_URL: Cleared unless set by the test
package harness

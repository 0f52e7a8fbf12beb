package integration_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/clawusage/test/integration/harness"
)

const token = "integration-token"

// sampleDays covers today and the two days before it
func sampleDays() []harness.DailyUsage {
	return []harness.DailyUsage{
		{Date: harness.DaysAgo(2), Input: 8, Output: 2, TotalTokens: 10},
		{Date: harness.DaysAgo(1), Input: 41_000_000, Output: 548_324, TotalTokens: 41_548_324},
		{Date: harness.DaysAgo(0), Input: 1_400_000, Output: 3_748, TotalTokens: 1_403_748},
	}
}

func TestUsage(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		setup func(t *testing.T, env *harness.TestEnvironment)
		// Exactly one of the three outcomes applies: success, failed (runtime error) or rejected (parse error)
		wantFailed   []string
		wantRejected []string
		validate     func(t *testing.T, env *harness.TestEnvironment, result harness.Result)
	}{
		{
			name: "default prints last days without saving",
			setup: func(t *testing.T, env *harness.TestEnvironment) {
				env.UseGateway(harness.NewFakeGateway(t, token, sampleDays()...))
			},
			validate: func(t *testing.T, env *harness.TestEnvironment, result harness.Result) {
				harness.AssertStdoutContains(t, result, harness.DaysAgo(0), "42,952,082")
				assert.NoFileExists(t, env.DBPath())
			},
		},
		{
			name: "days limits the window",
			args: []string{"--days", "2"},
			setup: func(t *testing.T, env *harness.TestEnvironment) {
				env.UseGateway(harness.NewFakeGateway(t, token, sampleDays()...))
			},
			validate: func(t *testing.T, env *harness.TestEnvironment, result harness.Result) {
				harness.AssertStdoutContains(t, result, "42,952,072", "21,476,036")
				harness.AssertStdoutNotContains(t, result, harness.DaysAgo(2))
			},
		},
		{
			name: "stale days outside the window are dropped",
			args: []string{"--days", "3"},
			setup: func(t *testing.T, env *harness.TestEnvironment) {
				days := append(sampleDays(), harness.DailyUsage{Date: harness.DaysAgo(30), TotalTokens: 999_999})
				env.UseGateway(harness.NewFakeGateway(t, token, days...))
			},
			validate: func(t *testing.T, env *harness.TestEnvironment, result harness.Result) {
				harness.AssertStdoutContains(t, result, "42,952,082")
				harness.AssertStdoutNotContains(t, result, harness.DaysAgo(30), "999,999")
			},
		},
		{
			name: "breakdown shows token kinds",
			args: []string{"--breakdown"},
			setup: func(t *testing.T, env *harness.TestEnvironment) {
				env.UseGateway(harness.NewFakeGateway(t, token, sampleDays()...))
			},
			validate: func(t *testing.T, env *harness.TestEnvironment, result harness.Result) {
				harness.AssertStdoutContains(t, result, "input 41,000,000  output 548,324")
			},
		},
		{
			name: "json output",
			args: []string{"--json"},
			setup: func(t *testing.T, env *harness.TestEnvironment) {
				env.UseGateway(harness.NewFakeGateway(t, token, sampleDays()...))
			},
			validate: func(t *testing.T, env *harness.TestEnvironment, result harness.Result) {
				var out struct {
					Days  int   `json:"days"`
					Total int64 `json:"total"`
				}
				harness.AssertSingleJSON(t, result, &out)
				assert.Equal(t, 3, out.Days)
				assert.Equal(t, int64(42_952_082), out.Total)
			},
		},
		{
			name: "missing token fails",
			setup: func(t *testing.T, env *harness.TestEnvironment) {
				gw := harness.NewFakeGateway(t, token, sampleDays()...)
				env.SetEnv("OPENCLAW_GATEWAY_URL", gw.URL)
			},
			wantFailed: []string{"OPENCLAW_TOKEN"},
			validate: func(t *testing.T, env *harness.TestEnvironment, result harness.Result) {
				harness.AssertStdoutEmpty(t, result)
			},
		},
		{
			name: "rejected token fails",
			setup: func(t *testing.T, env *harness.TestEnvironment) {
				gw := harness.NewFakeGateway(t, token, sampleDays()...)
				env.SetEnv("OPENCLAW_GATEWAY_URL", gw.URL)
				env.SetEnv("OPENCLAW_TOKEN", "wrong")
			},
			wantFailed: []string{"authentication failed", "Try:"},
		},
		{
			name: "unreachable gateway fails",
			args: []string{"--gateway", "ws://127.0.0.1:1"},
			setup: func(t *testing.T, env *harness.TestEnvironment) {
				env.SetEnv("OPENCLAW_TOKEN", token)
			},
			wantFailed: []string{"connection failed"},
		},
		{
			name: "malformed payload fails without saving",
			args: []string{"--save"},
			setup: func(t *testing.T, env *harness.TestEnvironment) {
				gw := harness.NewFakeGateway(t, token)
				gw.SetRawPayload(`{"totals":{"totalTokens":1}}`)
				env.UseGateway(gw)
			},
			wantFailed: []string{"unexpected gateway response", `"totals"`},
			validate: func(t *testing.T, env *harness.TestEnvironment, result harness.Result) {
				assert.NoFileExists(t, env.DBPath())
			},
		},
		{
			name:         "non-positive days rejected",
			args:         []string{"--days", "0"},
			wantRejected: []string{"--days must be a positive number"},
		},
		{
			name:         "status and list-all are exclusive",
			args:         []string{"--status", "--list-all"},
			wantRejected: []string{"--status", "--list-all"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := harness.NewTestEnvironment(t)

			if tt.setup != nil {
				tt.setup(t, env)
			}

			result := harness.Run(t, env, tt.args...)

			switch {
			case tt.wantFailed != nil:
				harness.AssertFailed(t, result, tt.wantFailed...)
			case tt.wantRejected != nil:
				harness.AssertRejected(t, result, tt.wantRejected...)
			default:
				harness.AssertSuccess(t, result)
			}

			if tt.validate != nil {
				tt.validate(t, env, result)
			}
		})
	}
}

func TestUsage_SaveStatusListAll(t *testing.T) {
	env := harness.NewTestEnvironment(t)
	gw := harness.NewFakeGateway(t, token, sampleDays()...)
	env.UseGateway(gw)

	// Empty store reports zeros
	result := harness.Run(t, env, "--status", "--json")
	harness.AssertSuccess(t, result)
	harness.AssertJSONField(t, result, "count", float64(0))
	harness.AssertJSONField(t, result, "earliest", nil)

	result = harness.Run(t, env, "--save")
	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "Saved 3 days (3 new, 0 updated)")
	assert.FileExists(t, env.DBPath())

	// Saving again updates in place
	days := sampleDays()
	days[2].TotalTokens = 2_000_000
	gw.SetDaily(days...)
	result = harness.Run(t, env, "--save")
	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "Saved 3 days (0 new, 3 updated)")

	result = harness.Run(t, env, "--status", "--json")
	harness.AssertSuccess(t, result)
	harness.AssertJSONField(t, result, "count", float64(3))
	harness.AssertJSONField(t, result, "earliest", harness.DaysAgo(2))
	harness.AssertJSONField(t, result, "latest", harness.DaysAgo(0))
	harness.AssertJSONField(t, result, "totalTokens", float64(43_548_334))

	result = harness.Run(t, env, "--list-all", "--json")
	harness.AssertSuccess(t, result)
	var stored []struct {
		Date        string `json:"date"`
		TotalTokens int64  `json:"totalTokens"`
	}
	harness.AssertSingleJSON(t, result, &stored)
	require.Len(t, stored, 3)
	assert.Equal(t, harness.DaysAgo(2), stored[0].Date)
	assert.Equal(t, harness.DaysAgo(0), stored[2].Date)
	assert.Equal(t, int64(2_000_000), stored[2].TotalTokens)

	result = harness.Run(t, env, "--list-all", "--breakdown")
	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "2,000,000", "input 41,000,000")
}

func TestUsage_SaveWithJSONKeepsStdoutParseable(t *testing.T) {
	env := harness.NewTestEnvironment(t)
	env.UseGateway(harness.NewFakeGateway(t, token, sampleDays()...))

	result := harness.Run(t, env, "--save", "--pretty")

	harness.AssertSuccess(t, result)
	var out struct {
		Total int64 `json:"total"`
	}
	harness.AssertSingleJSON(t, result, &out)
	assert.Equal(t, int64(42_952_082), out.Total)
	assert.Contains(t, result.Stderr, "Saved 3 days (3 new, 0 updated)")
}

func TestUsage_CorruptDatabase(t *testing.T) {
	env := harness.NewTestEnvironment(t)
	require.NoError(t, os.WriteFile(env.DBPath(), []byte("this is not a sqlite database, just text padding it out"), 0644))

	result := harness.Run(t, env, "--status")

	harness.AssertFailed(t, result, "storage failure")
}

func TestVersion(t *testing.T) {
	env := harness.NewTestEnvironment(t)

	result := harness.Run(t, env, "--version")

	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "clawusage")
}

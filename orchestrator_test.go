package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"probinary_go/config"
	"probinary_go/logs"
	"probinary_go/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logs.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.NewConfig()
	cfg.Name = "test"
	cfg.Session.InitialBalance = 1000
	cfg.Session.DynamicStopFloor = 900
	cfg.Parameters = &config.ParametersConfig{RiskPercent: 2, TrailingPercent: 5, TargetPercent: 5, MaxTrades: 10}
	cfg.Exits = &config.ExitConfig{EnableTargetStop: true, EnableTrailingStop: true}
	cfg.Normal = &config.NormalConfig{
		LogDirectory:   filepath.Join(dir, "logs"),
		StateDirectory: filepath.Join(dir, "state"),
		MetricsFile:    filepath.Join(dir, "state", "metrics.prom"),
	}
	cfg.Logs = &config.LogConfig{LogLevel: "info", MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1}
	require.NoError(t, cfg.Validate())
	return cfg
}

func newTestOrchestrator(t *testing.T, cfg *config.Config, scenarioYAML string) (*Orchestrator, *bytes.Buffer) {
	t.Helper()
	sc, err := config.ParseScenario([]byte(scenarioYAML))
	require.NoError(t, err)
	o, err := NewOrchestrator(cfg, sc, filepath.Join(cfg.Normal.StateDirectory, "test_state.json"))
	require.NoError(t, err)
	buf := &bytes.Buffer{}
	o.out = buf
	return o, buf
}

const lossStreakScenario = `
events:
  - {type: trade, amount: 500}
  - {type: loss, amount: 10}
  - {type: trade, amount: 1500}
  - {type: trade, amount: 400}
  - {type: profit, amount: 25}
  - {type: trade, amount: 300}
  - {type: loss, amount: 6}
  - {type: loss, amount: 6}
  - {type: loss, amount: 6}
  - {type: trade, amount: 100}
  - {type: resume}
  - {type: trade, amount: 100}
`

func TestOrchestrator_ReplaysLossStreak(t *testing.T) {
	cfg := testConfig(t)
	o, out := newTestOrchestrator(t, cfg, lossStreakScenario)

	require.NoError(t, o.Run(context.Background()))

	snap := o.session.Snapshot()
	assert.InDelta(t, 997.0, snap.Balance, 1e-9)
	assert.Equal(t, 4, snap.TradesPlaced)
	assert.Equal(t, "RUNNING", snap.State)
	assert.Equal(t, map[string]int{"accepted": 4, "rejected": 1, "halted": 1}, o.decisions)

	st := o.stateManager.GetFullState()
	require.NotNil(t, st.Session)
	assert.Equal(t, snap, *st.Session)
	assert.Len(t, st.Outcomes, 5)

	_, err := os.Stat(cfg.Normal.MetricsFile)
	assert.NoError(t, err)
	assert.Contains(t, out.String(), "SESSION SUMMARY")
}

func TestOrchestrator_TargetStopsSession(t *testing.T) {
	cfg := testConfig(t)
	o, _ := newTestOrchestrator(t, cfg, `
events:
  - {type: trade, amount: 200}
  - {type: profit, amount: 60}
  - {type: trade, amount: 200}
`)

	require.NoError(t, o.Run(context.Background()))

	reason, ok := o.session.StopReason()
	require.True(t, ok)
	assert.Equal(t, session.Target, reason)
	assert.Equal(t, 1, o.decisions["halted"])
}

func TestOrchestrator_FatigueAfterMaxTrades(t *testing.T) {
	cfg := testConfig(t)
	cfg.Parameters.MaxTrades = 1
	o, _ := newTestOrchestrator(t, cfg, `
events:
  - {type: trade, amount: 10}
  - {type: trade, amount: 10}
`)

	require.NoError(t, o.Run(context.Background()))

	reason, _ := o.session.StopReason()
	assert.Equal(t, session.Fatigue, reason)
	assert.Equal(t, 1, o.decisions["accepted"])
	assert.Equal(t, 1, o.decisions["halted"])
}

func TestOrchestrator_SpanishLocaleInSummary(t *testing.T) {
	cfg := testConfig(t)
	cfg.Session.Locale = "es"
	o, out := newTestOrchestrator(t, cfg, `
events:
  - {type: stop, reason: target}
`)

	require.NoError(t, o.Run(context.Background()))

	assert.Contains(t, out.String(), "Meta diaria alcanzada")
}

func TestNewOrchestrator_RejectsUnknownStopReason(t *testing.T) {
	cfg := testConfig(t)
	sc, err := config.ParseScenario([]byte("events:\n  - {type: stop, reason: meta}\n"))
	require.NoError(t, err)

	_, err = NewOrchestrator(cfg, sc, filepath.Join(cfg.Normal.StateDirectory, "s.json"))
	assert.Error(t, err)
}

func TestOrchestrator_CancelledRunStopsEarly(t *testing.T) {
	cfg := testConfig(t)
	o, _ := newTestOrchestrator(t, cfg, lossStreakScenario)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, o.Run(ctx))

	assert.Equal(t, 0, o.session.TradesPlaced())
}

func TestOrchestrator_StartStop(t *testing.T) {
	cfg := testConfig(t)
	o, _ := newTestOrchestrator(t, cfg, lossStreakScenario)

	o.Start()
	<-o.Done()

	assert.NoError(t, o.Stop())
	assert.Equal(t, 4, o.session.TradesPlaced())
}

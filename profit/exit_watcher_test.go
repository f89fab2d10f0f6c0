package profit

import (
	"io"
	"os"
	"testing"

	"probinary_go/logs"
	"probinary_go/session"

	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	logs.SetOutput(io.Discard)
	os.Exit(m.Run())
}

var watchParams = session.Parameters{RiskPercent: 1, TrailingPercent: 5, TargetPercent: 10, MaxTrades: 5}

func TestExitWatcher_Target(t *testing.T) {
	w := NewExitWatcher(1000, true, false)

	_, hit := w.Check(1099, watchParams)
	assert.False(t, hit)

	reason, hit := w.Check(1100, watchParams)
	assert.True(t, hit)
	assert.Equal(t, session.Target, reason)
}

func TestExitWatcher_TrailingArmsOnlyAfterProfit(t *testing.T) {
	w := NewExitWatcher(1000, false, true)

	// a plain loss from the start is not a trailing stop
	_, hit := w.Check(900, watchParams)
	assert.False(t, hit)

	_, hit = w.Check(1060, watchParams)
	assert.False(t, hit)
	assert.Equal(t, 1060.0, w.PeakBalance())

	_, hit = w.Check(1008, watchParams)
	assert.False(t, hit)

	// trigger sits at 1060 * 0.95, about 1007
	reason, hit := w.Check(1000, watchParams)
	assert.True(t, hit)
	assert.Equal(t, session.Trailing, reason)
}

func TestExitWatcher_Disabled(t *testing.T) {
	w := NewExitWatcher(1000, false, false)

	_, hit := w.Check(5000, watchParams)
	assert.False(t, hit)
	_, hit = w.Check(100, watchParams)
	assert.False(t, hit)
}

func TestExitWatcher_Reset(t *testing.T) {
	w := NewExitWatcher(1000, true, true)
	w.Check(1080, watchParams)

	w.Reset(900)

	assert.Equal(t, 900.0, w.PeakBalance())
	_, hit := w.Check(950, watchParams)
	assert.False(t, hit)
}

package profit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_TracksTotalsAndDrawdown(t *testing.T) {
	l := NewLedger(1000)
	fixed := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)
	l.now = func() time.Time { return fixed }

	l.RecordWin(100, 1100)
	l.RecordLoss(50, 1050)
	o := l.RecordLoss(100, 950)

	assert.Equal(t, Loss, o.Kind)
	assert.NotEmpty(t, o.ID)
	assert.Equal(t, fixed.UnixMilli(), o.Timestamp)

	st := l.GetStats()
	assert.Equal(t, 1, st.Wins)
	assert.Equal(t, 2, st.Losses)
	assert.InDelta(t, -50.0, st.RealizedPNL, 1e-9)
	assert.Equal(t, 1100.0, st.PeakBalance)
	assert.InDelta(t, 150.0, st.MaxDrawdown, 1e-9)
	assert.InDelta(t, 150.0/1100*100, st.MaxDrawdownPct, 1e-9)
	assert.InDelta(t, 100.0/3, st.WinRate, 1e-9)
}

func TestLedger_OutcomesReturnsTail(t *testing.T) {
	l := NewLedger(1000)
	l.RecordWin(1, 1001)
	l.RecordWin(2, 1003)
	l.RecordWin(3, 1006)

	tail := l.Outcomes(2)
	require.Len(t, tail, 2)
	assert.Equal(t, 2.0, tail[0].Amount)
	assert.Len(t, l.Outcomes(0), 3)
}

func TestLedger_EmptyStats(t *testing.T) {
	st := NewLedger(500).GetStats()
	assert.Equal(t, 0.0, st.WinRate)
	assert.Equal(t, 500.0, st.PeakBalance)
}

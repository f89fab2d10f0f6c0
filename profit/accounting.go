package profit

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// OutcomeKind tells whether an outcome added to or took from the balance.
type OutcomeKind string

const (
	Win  OutcomeKind = "WIN"
	Loss OutcomeKind = "LOSS"
)

// Outcome is one realized trade result as reported to the session.
type Outcome struct {
	ID           string      `json:"id"`
	Kind         OutcomeKind `json:"kind"`
	Amount       float64     `json:"amount"`        // As reported, never sign-adjusted
	BalanceAfter float64     `json:"balance_after"` // Session balance once the outcome was applied
	Timestamp    int64       `json:"timestamp"`     // Unix milliseconds
}

// Stats summarizes the ledger.
type Stats struct {
	Wins           int
	Losses         int
	RealizedPNL    float64
	PeakBalance    float64
	MaxDrawdown    float64 // Largest fall from a running peak, in balance units
	MaxDrawdownPct float64
	WinRate        float64 // Percent of outcomes that were wins
}

// Ledger keeps the history of outcomes for reporting and persistence.
type Ledger struct {
	mu             sync.Mutex
	startBalance   float64
	outcomes       []Outcome
	realized       float64
	wins, losses   int
	peak           float64
	maxDrawdown    float64
	maxDrawdownPct float64
	now            func() time.Time
}

// NewLedger creates a ledger for a session starting at startBalance.
func NewLedger(startBalance float64) *Ledger {
	return &Ledger{
		startBalance: startBalance,
		peak:         startBalance,
		outcomes:     make([]Outcome, 0),
		now:          time.Now,
	}
}

// RecordWin stores a profit and returns the stored outcome.
func (l *Ledger) RecordWin(amount, balanceAfter float64) Outcome {
	return l.record(Win, amount, balanceAfter)
}

// RecordLoss stores a loss and returns the stored outcome.
func (l *Ledger) RecordLoss(amount, balanceAfter float64) Outcome {
	return l.record(Loss, amount, balanceAfter)
}

func (l *Ledger) record(kind OutcomeKind, amount, balanceAfter float64) Outcome {
	l.mu.Lock()
	defer l.mu.Unlock()

	o := Outcome{
		ID:           uuid.NewString(),
		Kind:         kind,
		Amount:       amount,
		BalanceAfter: balanceAfter,
		Timestamp:    l.now().UnixMilli(),
	}
	l.outcomes = append(l.outcomes, o)

	if kind == Win {
		l.wins++
		l.realized += amount
	} else {
		l.losses++
		l.realized -= amount
	}

	if balanceAfter > l.peak {
		l.peak = balanceAfter
	}
	drawdown := l.peak - balanceAfter
	if drawdown > l.maxDrawdown {
		l.maxDrawdown = drawdown
		if l.peak > 0 {
			l.maxDrawdownPct = drawdown / l.peak * 100
		}
	}
	return o
}

// Outcomes returns a copy of the last n outcomes, or all of them when n <= 0.
func (l *Ledger) Outcomes(n int) []Outcome {
	l.mu.Lock()
	defer l.mu.Unlock()
	src := l.outcomes
	if n > 0 && len(src) > n {
		src = src[len(src)-n:]
	}
	out := make([]Outcome, len(src))
	copy(out, src)
	return out
}

// GetStats returns the current totals.
func (l *Ledger) GetStats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	st := Stats{
		Wins:           l.wins,
		Losses:         l.losses,
		RealizedPNL:    l.realized,
		PeakBalance:    l.peak,
		MaxDrawdown:    l.maxDrawdown,
		MaxDrawdownPct: l.maxDrawdownPct,
	}
	if total := l.wins + l.losses; total > 0 {
		st.WinRate = float64(l.wins) / float64(total) * 100
	}
	return st
}

package profit

import (
	"probinary_go/logs"
	"probinary_go/session"
)

// ExitWatcher evaluates the daily target and the dynamic trailing stop against the
// session balance. It only reports a reason; the caller decides to stop the session.
type ExitWatcher struct {
	EnableTarget   bool
	EnableTrailing bool

	startBalance float64
	peakBalance  float64
}

// NewExitWatcher creates a watcher anchored at the session's starting balance.
func NewExitWatcher(startBalance float64, enableTarget, enableTrailing bool) *ExitWatcher {
	return &ExitWatcher{
		EnableTarget:   enableTarget,
		EnableTrailing: enableTrailing,
		startBalance:   startBalance,
		peakBalance:    startBalance,
	}
}

// Check updates the peak and returns the reason that should stop the session, if any.
// The target takes precedence over the trailing stop.
func (w *ExitWatcher) Check(balance float64, params session.Parameters) (session.StopReason, bool) {
	if balance > w.peakBalance {
		w.peakBalance = balance
		logs.Debugf("[Exit Watcher] -> Balance reached new high: %.2f", w.peakBalance)
	}

	if w.EnableTarget && params.TargetPercent > 0 {
		targetBalance := w.startBalance * (1 + params.TargetPercent/100)
		if balance >= targetBalance {
			logs.Infof("[Exit Watcher] -> Daily target reached: balance %.2f, target %.2f", balance, targetBalance)
			return session.Target, true
		}
	}

	// The trailing stop only arms once the session has been in profit.
	if w.EnableTrailing && params.TrailingPercent > 0 && w.peakBalance > w.startBalance {
		trigger := w.peakBalance * (1 - params.TrailingPercent/100)
		if balance <= trigger {
			logs.Warnf("[Exit Watcher] -> Trailing stop triggered: peak %.2f, balance %.2f, trigger %.2f",
				w.peakBalance, balance, trigger)
			return session.Trailing, true
		}
	}
	return "", false
}

// PeakBalance returns the highest balance seen so far.
func (w *ExitWatcher) PeakBalance() float64 {
	return w.peakBalance
}

// Reset re-anchors the watcher, e.g. when a stopped session is resumed.
func (w *ExitWatcher) Reset(balance float64) {
	w.startBalance = balance
	w.peakBalance = balance
	logs.Info("[Exit Watcher] -> Watcher state has been reset.")
}

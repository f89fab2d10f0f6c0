// risk/manager.go
package risk

import (
	"errors"

	"probinary_go/session"
)

// Guard is the part of a trading session the order layer depends on.
// *session.Session satisfies it; tests may substitute their own.
type Guard interface {
	PlaceTrade(amount float64) (float64, error)
	MaxInvestmentWithoutBreakingStop(riskPercent float64) (float64, error)
	RecordLoss(amount float64)
	RecordProfit(amount float64)
	Stop(reason session.StopReason)
	Resume()
	Snapshot() session.Snapshot
}

var _ Guard = (*session.Session)(nil)

// EvaluateTrade asks the guard to place a trade and turns the result into an action.
// Errors that are neither stop nor validation errors are returned unchanged.
func EvaluateTrade(g Guard, amount float64) (Action, error) {
	accepted, err := g.PlaceTrade(amount)
	if err == nil {
		snap := g.Snapshot()
		return &AcceptTradeAction{
			Amount:       accepted,
			TradesPlaced: snap.TradesPlaced,
			MaxTrades:    snap.Parameters.MaxTrades,
		}, nil
	}

	var se *session.StopError
	if errors.As(err, &se) {
		return &HaltAction{Reason: se.Reason, HasReason: se.HasReason, Err: err}, nil
	}
	var ve *session.ValidationError
	if errors.As(err, &ve) {
		return &RejectTradeAction{Amount: amount, Field: ve.Field, Err: err}, nil
	}
	return nil, err
}

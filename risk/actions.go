// risk/actions.go
package risk

import (
	"fmt"

	"probinary_go/session"
)

// Action is the decision returned to the order layer for a proposed trade.
type Action interface {
	Description() string
}

// AcceptTradeAction means the session accepted the stake and counted the trade.
type AcceptTradeAction struct {
	Amount       float64
	TradesPlaced int
	MaxTrades    int
}

func (a *AcceptTradeAction) Description() string {
	return fmt.Sprintf("Accept trade: amount %.2f (%d/%d)", a.Amount, a.TradesPlaced, a.MaxTrades)
}

// RejectTradeAction means the stake or the parameters failed validation. The session keeps running.
type RejectTradeAction struct {
	Amount float64
	Field  string
	Err    error
}

func (a *RejectTradeAction) Description() string {
	return fmt.Sprintf("Reject trade: amount %.2f, %v", a.Amount, a.Err)
}

// HaltAction means the session is stopped and no orders should be sent until it is resumed.
type HaltAction struct {
	Reason    session.StopReason
	HasReason bool
	Err       error
}

func (a *HaltAction) Description() string {
	if !a.HasReason {
		return fmt.Sprintf("Halt trading: %v", a.Err)
	}
	return fmt.Sprintf("Halt trading (%s): %v", a.Reason, a.Err)
}

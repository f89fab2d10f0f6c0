// session/session.go
package session

import (
	"fmt"
	"math"
	"sync"

	"probinary_go/logs"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultConsecutiveLossLimit is used when no limit option is given.
const DefaultConsecutiveLossLimit = 3

// Snapshot is a copy of the observable session fields.
type Snapshot struct {
	ID                   string     `json:"id"`
	Balance              float64    `json:"balance"`
	DynamicStopFloor     float64    `json:"dynamic_stop_floor"`
	Parameters           Parameters `json:"parameters"`
	State                string     `json:"state"`
	StopReason           StopReason `json:"stop_reason,omitempty"`
	ConsecutiveLosses    int        `json:"consecutive_losses"`
	ConsecutiveLossLimit int        `json:"consecutive_loss_limit"`
	TradesPlaced         int        `json:"trades_placed"`
}

// Session tracks balance, risk parameters and halt state of one trading run.
// Every exported method runs as one critical section.
type Session struct {
	mu sync.Mutex

	id                   string
	balance              float64
	dynamicStopFloor     float64
	parameters           *Parameters
	state                State
	stopReason           StopReason
	hasStopReason        bool
	consecutiveLosses    int
	consecutiveLossLimit int
	tradesPlaced         int
	messages             Messages
}

// Option customizes a Session at construction.
type Option func(*Session)

// WithConsecutiveLossLimit sets how many losses in a row stop the session.
func WithConsecutiveLossLimit(limit int) Option {
	return func(s *Session) { s.consecutiveLossLimit = limit }
}

// WithMessages replaces the stop message table.
func WithMessages(m Messages) Option {
	return func(s *Session) { s.messages = m.clone() }
}

// WithID overrides the generated session id.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// NewSession creates a running session. The parameters are validated here and again
// before every trade, since the caller keeps the pointer and may mutate it.
func NewSession(balance, dynamicStopFloor float64, params *Parameters, opts ...Option) (*Session, error) {
	if params == nil {
		return nil, newValidationError("parameters", 0, "parameters are required")
	}
	s := &Session{
		id:                   uuid.NewString(),
		balance:              balance,
		dynamicStopFloor:     dynamicStopFloor,
		parameters:           params,
		state:                Running,
		consecutiveLossLimit: DefaultConsecutiveLossLimit,
		messages:             EnglishMessages(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.parameters.Validate(); err != nil {
		return nil, err
	}
	if s.consecutiveLossLimit < 1 {
		return nil, newValidationError("consecutive_loss_limit", float64(s.consecutiveLossLimit),
			"consecutive loss limit must be at least 1 (received: %d)", s.consecutiveLossLimit)
	}
	if err := s.messages.Validate(); err != nil {
		return nil, err
	}

	s.logger().Infof("[Session] Created with balance %.2f, dynamic stop floor %.2f, risk %.2f%%, max trades %d",
		balance, dynamicStopFloor, params.RiskPercent, params.MaxTrades)
	return s, nil
}

func (s *Session) logger() *logrus.Entry {
	return logs.WithFields(logrus.Fields{"session": s.id})
}

// Stop halts the session. Calling it again only overwrites the reason.
func (s *Session) Stop(reason StopReason) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stop(reason)
}

func (s *Session) stop(reason StopReason) {
	s.state = Stopped
	s.stopReason = reason
	s.hasStopReason = true
	s.logger().WithField("reason", string(reason)).Warnf("[Session] Stopped: %s", s.messages.Reason(reason))
}

// Resume sets the session running again and clears any stop reason.
func (s *Session) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	wasStopped := s.state == Stopped
	s.state = Running
	s.stopReason = ""
	s.hasStopReason = false
	if wasStopped {
		s.logger().Info("[Session] Resumed")
	}
}

// AssertRunning returns a *StopError when the session is stopped.
func (s *Session) AssertRunning() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assertRunning()
}

func (s *Session) assertRunning() error {
	if s.state != Stopped {
		return nil
	}
	text := s.messages.Stopped
	if s.hasStopReason {
		text = s.messages.Reason(s.stopReason)
	}
	return &StopError{
		Reason:    s.stopReason,
		HasReason: s.hasStopReason,
		Message:   fmt.Sprintf("%s: %s.", s.messages.Blocked, text),
	}
}

// RecordLoss subtracts amount from the balance and stops the session once the
// consecutive loss limit is reached. The amount is taken as given.
func (s *Session) RecordLoss(amount float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.balance -= amount
	s.consecutiveLosses++
	s.logger().Debugf("[Session] Loss %.2f recorded, balance %.2f, consecutive losses %d/%d",
		amount, s.balance, s.consecutiveLosses, s.consecutiveLossLimit)
	if s.consecutiveLosses >= s.consecutiveLossLimit {
		s.stop(ConsecutiveLosses)
	}
}

// RecordProfit adds amount to the balance and resets the loss streak.
// It does not resume a stopped session.
func (s *Session) RecordProfit(amount float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.balance += amount
	s.consecutiveLosses = 0
	s.logger().Debugf("[Session] Profit %.2f recorded, balance %.2f", amount, s.balance)
}

// MaxInvestmentWithoutBreakingStop returns the largest stake whose full loss at
// riskPercent keeps the balance at or above the dynamic stop floor, capped by the balance.
func (s *Session) MaxInvestmentWithoutBreakingStop(riskPercent float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxInvestment(riskPercent)
}

func (s *Session) maxInvestment(riskPercent float64) (float64, error) {
	availableDrawdown := math.Max(s.balance-s.dynamicStopFloor, 0)
	if !(riskPercent > 0) {
		return 0, newValidationError("risk_percent", riskPercent,
			"risk must be greater than zero to compute the allowed amount (received: %v)", riskPercent)
	}

	// potential loss = stake * riskPercent / 100
	allowedByStop := availableDrawdown / (riskPercent / 100)
	return math.Min(s.balance, allowedByStop), nil
}

// PlaceTrade runs every guard and returns the accepted amount.
// Hitting the trade cap stops the session with Fatigue before the error is returned.
func (s *Session) PlaceTrade(amount float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.assertRunning(); err != nil {
		return 0, err
	}
	if err := s.parameters.Validate(); err != nil {
		return 0, err
	}

	if s.tradesPlaced >= s.parameters.MaxTrades {
		s.stop(Fatigue)
		if err := s.assertRunning(); err != nil {
			return 0, err
		}
	}

	maxAllowed, err := s.maxInvestment(s.parameters.RiskPercent)
	if err != nil {
		return 0, err
	}
	if amount > maxAllowed {
		return 0, newValidationError("amount", amount,
			"proposed amount exceeds what the dynamic stop allows. Maximum allowed: %.2f.", maxAllowed)
	}

	s.tradesPlaced++
	s.logger().Infof("[Session] Trade %d/%d accepted for %.2f", s.tradesPlaced, s.parameters.MaxTrades, amount)
	return amount, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Balance returns the current equity.
func (s *Session) Balance() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balance
}

// DynamicStopFloor returns the fixed balance floor.
func (s *Session) DynamicStopFloor() float64 {
	return s.dynamicStopFloor
}

// Parameters returns the owned parameter set. Changes are re-validated on the next trade.
func (s *Session) Parameters() *Parameters {
	return s.parameters
}

// State returns Running or Stopped.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// StopReason returns the reason and whether one is set.
func (s *Session) StopReason() (StopReason, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopReason, s.hasStopReason
}

// ConsecutiveLosses returns the current loss streak.
func (s *Session) ConsecutiveLosses() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.consecutiveLosses
}

// ConsecutiveLossLimit returns the streak length that stops the session.
func (s *Session) ConsecutiveLossLimit() int {
	return s.consecutiveLossLimit
}

// TradesPlaced returns the number of accepted trades.
func (s *Session) TradesPlaced() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tradesPlaced
}

// Snapshot captures all observable fields at once.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:                   s.id,
		Balance:              s.balance,
		DynamicStopFloor:     s.dynamicStopFloor,
		Parameters:           *s.parameters,
		State:                s.state.String(),
		StopReason:           s.stopReason,
		ConsecutiveLosses:    s.consecutiveLosses,
		ConsecutiveLossLimit: s.consecutiveLossLimit,
		TradesPlaced:         s.tradesPlaced,
	}
}

// session/params.go
package session

// Parameters holds the limits used to place trades.
// Construction does not validate; call Validate (NewSession and PlaceTrade do).
type Parameters struct {
	RiskPercent     float64 `yaml:"risk_percent" json:"risk_percent"`         // Percent of balance risked per trade (0.5-5)
	TrailingPercent float64 `yaml:"trailing_percent" json:"trailing_percent"` // Dynamic trailing stop percent (3-15)
	TargetPercent   float64 `yaml:"target_percent" json:"target_percent"`     // Profit target percent (3-15)
	MaxTrades       int     `yaml:"max_trades" json:"max_trades"`             // Trade cap for the session
}

const (
	MinRiskPercent     = 0.5
	MaxRiskPercent     = 5.0
	MinTrailingPercent = 3.0
	MaxTrailingPercent = 15.0
	MinTargetPercent   = 3.0
	MaxTargetPercent   = 15.0
)

// Validate checks each field against its closed range and returns the first violation.
// The negated comparisons also reject NaN.
func (p *Parameters) Validate() error {
	if !(MinRiskPercent <= p.RiskPercent && p.RiskPercent <= MaxRiskPercent) {
		return newValidationError("risk_percent", p.RiskPercent,
			"risk must be between %g%% and %g%% (received: %v)", MinRiskPercent, MaxRiskPercent, p.RiskPercent)
	}
	if !(MinTrailingPercent <= p.TrailingPercent && p.TrailingPercent <= MaxTrailingPercent) {
		return newValidationError("trailing_percent", p.TrailingPercent,
			"trailing must be between %g%% and %g%% (received: %v)", MinTrailingPercent, MaxTrailingPercent, p.TrailingPercent)
	}
	if !(MinTargetPercent <= p.TargetPercent && p.TargetPercent <= MaxTargetPercent) {
		return newValidationError("target_percent", p.TargetPercent,
			"target must be between %g%% and %g%% (received: %v)", MinTargetPercent, MaxTargetPercent, p.TargetPercent)
	}
	if p.MaxTrades <= 0 {
		return newValidationError("max_trades", float64(p.MaxTrades),
			"trade limit must be greater than zero (received: %d)", p.MaxTrades)
	}
	return nil
}

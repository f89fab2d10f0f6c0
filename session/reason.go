// session/reason.go
package session

import (
	"fmt"
	"strings"
)

// State is the running/stopped flag of a session.
type State int

const (
	Running State = iota
	Stopped
)

// String returns the string representation of the session state
func (s State) String() string {
	switch s {
	case Running:
		return "RUNNING"
	case Stopped:
		return "STOPPED"
	default:
		return "UNKNOWN"
	}
}

// StopReason explains why a session was halted.
type StopReason string

const (
	Fatigue           StopReason = "fatigue"
	Trailing          StopReason = "trailing"
	Target            StopReason = "target"
	ConsecutiveLosses StopReason = "consecutive_losses"
)

// AllStopReasons lists every reason in a stable order.
var AllStopReasons = []StopReason{Fatigue, Trailing, Target, ConsecutiveLosses}

// ParseStopReason maps a reason code from a config or scenario file.
func ParseStopReason(code string) (StopReason, error) {
	r := StopReason(strings.ToLower(strings.TrimSpace(code)))
	for _, known := range AllStopReasons {
		if r == known {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown stop reason %q", code)
}

// HumanReason returns the English text for the reason.
func (r StopReason) HumanReason() string {
	return englishMessages.Reason(r)
}

// Messages is the human-readable text used in stop errors.
// Reasons must cover every StopReason.
type Messages struct {
	Reasons map[StopReason]string
	Stopped string // Used when a stopped session has no reason
	Blocked string // Prefix of every StopError message
}

var englishMessages = Messages{
	Reasons: map[StopReason]string{
		Fatigue:           "Operational fatigue detected",
		Trailing:          "Dynamic trailing stop reached",
		Target:            "Daily target reached",
		ConsecutiveLosses: "Consecutive loss limit reached",
	},
	Stopped: "Session stopped",
	Blocked: "Action blocked",
}

var spanishMessages = Messages{
	Reasons: map[StopReason]string{
		Fatigue:           "Fatiga operativa detectada",
		Trailing:          "Stop dinámico alcanzado por trailing",
		Target:            "Meta diaria alcanzada",
		ConsecutiveLosses: "Límite de pérdidas consecutivas alcanzado",
	},
	Stopped: "Estado detenido",
	Blocked: "Acción bloqueada",
}

// EnglishMessages returns a copy of the default message table.
func EnglishMessages() Messages { return englishMessages.clone() }

// SpanishMessages returns a copy of the source-locale message table.
func SpanishMessages() Messages { return spanishMessages.clone() }

// MessagesFor resolves a locale code ("en", "es"). An empty locale means English.
func MessagesFor(locale string) (Messages, error) {
	switch strings.ToLower(strings.TrimSpace(locale)) {
	case "", "en":
		return EnglishMessages(), nil
	case "es":
		return SpanishMessages(), nil
	default:
		return Messages{}, fmt.Errorf("unsupported locale %q (expected 'en' or 'es')", locale)
	}
}

// Validate ensures the table is total over all reasons.
func (m Messages) Validate() error {
	for _, r := range AllStopReasons {
		if strings.TrimSpace(m.Reasons[r]) == "" {
			return newValidationError("messages", 0, "message table has no text for stop reason %q", string(r))
		}
	}
	if m.Stopped == "" || m.Blocked == "" {
		return newValidationError("messages", 0, "message table must define stopped and blocked texts")
	}
	return nil
}

// Reason returns the text for r, or the generic stopped text for a code outside the table.
func (m Messages) Reason(r StopReason) string {
	if text, ok := m.Reasons[r]; ok && text != "" {
		return text
	}
	return m.Stopped
}

func (m Messages) clone() Messages {
	reasons := make(map[StopReason]string, len(m.Reasons))
	for k, v := range m.Reasons {
		reasons[k] = v
	}
	return Messages{Reasons: reasons, Stopped: m.Stopped, Blocked: m.Blocked}
}

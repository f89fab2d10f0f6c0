// config/scenario.go
package config

import (
	"fmt"
	"io/ioutil"
	"strings"

	"gopkg.in/yaml.v2"
)

// EventType names one step of a replayed scenario.
type EventType string

const (
	EventTrade  EventType = "trade"
	EventProfit EventType = "profit"
	EventLoss   EventType = "loss"
	EventStop   EventType = "stop"
	EventResume EventType = "resume"
)

// Event is a single instruction fed to the session by the replay driver.
type Event struct {
	Type   EventType `yaml:"type"`
	Amount float64   `yaml:"amount"`
	Reason string    `yaml:"reason"` // Stop reason code, only for "stop"
	Note   string    `yaml:"note"`
}

// Scenario is an ordered list of events.
type Scenario struct {
	Events []Event `yaml:"events"`
}

// LoadScenario reads and checks a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario unmarshals a scenario. Amounts are not range-checked here.
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scenario yaml: %w", err)
	}
	for i := range sc.Events {
		ev := &sc.Events[i]
		ev.Type = EventType(strings.ToLower(strings.TrimSpace(string(ev.Type))))
		switch ev.Type {
		case EventTrade, EventProfit, EventLoss, EventResume:
		case EventStop:
			if ev.Reason == "" {
				return nil, fmt.Errorf("scenario event %d: 'stop' requires a reason", i+1)
			}
		default:
			return nil, fmt.Errorf("scenario event %d: unknown type %q", i+1, ev.Type)
		}
	}
	return &sc, nil
}

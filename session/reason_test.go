package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStopReason_HumanReason(t *testing.T) {
	assert.Equal(t, "Operational fatigue detected", Fatigue.HumanReason())
	assert.Equal(t, "Dynamic trailing stop reached", Trailing.HumanReason())
	assert.Equal(t, "Daily target reached", Target.HumanReason())
	assert.Equal(t, "Consecutive loss limit reached", ConsecutiveLosses.HumanReason())
}

func TestMessages_TablesAreTotal(t *testing.T) {
	assert.NoError(t, EnglishMessages().Validate())
	assert.NoError(t, SpanishMessages().Validate())
	assert.Equal(t, "Meta diaria alcanzada", SpanishMessages().Reason(Target))
}

func TestMessages_ValidateRejectsPartialTable(t *testing.T) {
	m := EnglishMessages()
	delete(m.Reasons, Trailing)

	err := m.Validate()

	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	// the shared default table must be untouched
	assert.Equal(t, "Dynamic trailing stop reached", Trailing.HumanReason())
}

func TestMessagesFor(t *testing.T) {
	en, err := MessagesFor("")
	require.NoError(t, err)
	assert.Equal(t, "Action blocked", en.Blocked)

	es, err := MessagesFor("ES")
	require.NoError(t, err)
	assert.Equal(t, "Acción bloqueada", es.Blocked)

	_, err = MessagesFor("fr")
	assert.Error(t, err)
}

func TestParseStopReason(t *testing.T) {
	r, err := ParseStopReason(" Target ")
	require.NoError(t, err)
	assert.Equal(t, Target, r)

	_, err = ParseStopReason("meta")
	assert.Error(t, err)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "RUNNING", Running.String())
	assert.Equal(t, "STOPPED", Stopped.String())
}

func TestMessages_ReasonOutsideTable(t *testing.T) {
	assert.Equal(t, "Session stopped", EnglishMessages().Reason(StopReason("bogus")))
	assert.Equal(t, "Estado detenido", SpanishMessages().Reason(StopReason("")))
	assert.Equal(t, "Session stopped", StopReason("bogus").HumanReason())
}

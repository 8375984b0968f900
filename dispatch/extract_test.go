package dispatch

import (
	"testing"

	"github.com/studymesh/studymesh/core"
	"github.com/studymesh/studymesh/termination"
	"github.com/stretchr/testify/assert"
)

type summaryOutcome struct{ summary string }

func (s summaryOutcome) Summary() string { return s.summary }

type historyOutcome struct{ history []core.Message }

func (h historyOutcome) History() []core.Message { return h.history }

func TestExtractResultString(t *testing.T) {
	det := termination.New()

	assert.Equal(t, "x = 2", ExtractResult("x = 2 TERMINATE", det))
	assert.Equal(t, "plain answer", ExtractResult("plain answer", det))
}

func TestExtractResultSummary(t *testing.T) {
	det := termination.New()

	got := ExtractResult(summaryOutcome{summary: "The derivative is 2x. TERMINATE"}, det)
	assert.Equal(t, "The derivative is 2x.", got)
}

func TestExtractResultHistoryReverseScan(t *testing.T) {
	det := termination.New()

	outcome := historyOutcome{history: []core.Message{
		core.NewExpertMessage("Math_Expert", "Here is the full worked solution: x = 2."),
		core.NewExpertMessage("Info_Agent", "[internal routing note]"),
		core.NewExpertMessage("Math_Expert", "ok"),
	}}
	got := ExtractResult(outcome, det)
	assert.Equal(t, "Here is the full worked solution: x = 2.", got)
}

func TestExtractResultFallback(t *testing.T) {
	det := termination.New()

	assert.Equal(t, FallbackResult, ExtractResult(nil, det))
	assert.Equal(t, FallbackResult, ExtractResult("", det))
	assert.Equal(t, FallbackResult, ExtractResult("TERMINATE", det))
	assert.Equal(t, FallbackResult, ExtractResult(historyOutcome{}, det))
}

func TestExtractResultNeverReturnsSentinel(t *testing.T) {
	det := termination.New()

	outcome := historyOutcome{history: []core.Message{
		core.NewExpertMessage("CS_Expert", "Use a hash map for O(1) lookups. TERMINATE"),
	}}
	got := ExtractResult(outcome, det)
	assert.NotContains(t, got, "TERMINATE")
	assert.Equal(t, "Use a hash map for O(1) lookups.", got)
}

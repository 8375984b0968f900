// Package termination detects and strips the completion signals experts are
// instructed to emit when a query is fully addressed.
package termination

import "strings"

// Default completion sentinels. Experts are prompted to end with the English
// form; the Vietnamese form appears when a model follows the response
// language instead of the instruction verbatim.
var defaultSentinels = []string{"TERMINATE", "KẾT THÚC"}

// Default natural-language completion phrases, matched case-insensitively
// anywhere in the message.
var defaultPhrases = []string{
	"task completed",
	"problem solved",
	"query answered",
	"no further assistance needed",
	"đã hoàn thành",
}

// Detector classifies messages as terminal and strips sentinel markers from
// user-facing text. The zero value is not usable; call New.
type Detector struct {
	sentinels []string
	phrases   []string
}

// New returns a detector with the default sentinels and phrases.
func New() *Detector {
	return &Detector{sentinels: defaultSentinels, phrases: defaultPhrases}
}

// Terminal reports whether the message carries a completion signal: a
// sentinel at the end of the trimmed text, or a known completion phrase
// anywhere in it.
func (d *Detector) Terminal(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	for _, s := range d.sentinels {
		if strings.HasSuffix(trimmed, s) {
			return true
		}
	}
	lower := strings.ToLower(trimmed)
	for _, p := range d.phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// Strip removes trailing sentinel markers and surrounding whitespace from
// text. Idempotent: stripping an already-clean string returns it unchanged.
func (d *Detector) Strip(text string) string {
	out := strings.TrimSpace(text)
	for changed := true; changed; {
		changed = false
		for _, s := range d.sentinels {
			if strings.HasSuffix(out, s) {
				out = strings.TrimSpace(strings.TrimSuffix(out, s))
				changed = true
			}
		}
	}
	return out
}

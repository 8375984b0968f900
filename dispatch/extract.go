package dispatch

import (
	"fmt"
	"strings"

	"github.com/studymesh/studymesh/core"
	"github.com/studymesh/studymesh/termination"
)

// Fallback returned when no usable answer can be recovered from an engine
// outcome. Vietnamese because that is the deployment's default response
// language.
const FallbackResult = "Xin lỗi, tôi không thể xử lý yêu cầu này. Vui lòng thử lại với câu hỏi cụ thể hơn."

// summarizer is the preferred outcome shape.
type summarizer interface {
	Summary() string
}

// historian exposes the transcript for reverse scanning when no summary is
// available.
type historian interface {
	History() []core.Message
}

// minSubstantive is the shortest history entry worth surfacing during the
// reverse scan. Shorter entries are usually routing chatter.
const minSubstantive = 10

// ExtractResult normalizes an engine outcome into a non-empty, sentinel-free
// string. It probes outcome shapes in preference order: plain string, a
// Summary() accessor, a History() transcript scanned newest-first for a
// substantive entry, then a formatted rendering of the value. An unusable
// outcome yields FallbackResult, never an empty string.
func ExtractResult(outcome any, det *termination.Detector) string {
	if det == nil {
		det = termination.New()
	}

	switch v := outcome.(type) {
	case nil:
		return FallbackResult
	case string:
		return finalize(v, det)
	}

	structured := false
	if s, ok := outcome.(summarizer); ok {
		structured = true
		if text := det.Strip(s.Summary()); text != "" {
			return text
		}
	}
	if h, ok := outcome.(historian); ok {
		structured = true
		if text := scanHistory(h.History(), det); text != "" {
			return text
		}
	}
	if structured {
		// A structured outcome with no usable text has nothing worth
		// rendering verbatim.
		return FallbackResult
	}
	return finalize(fmt.Sprint(outcome), det)
}

// scanHistory walks the transcript newest-first looking for a substantive
// expert answer. Entries that render as internal structure (bracket-prefixed)
// or are too short to be an answer are skipped.
func scanHistory(history []core.Message, det *termination.Detector) string {
	for i := len(history) - 1; i >= 0; i-- {
		content := det.Strip(history[i].Content)
		if content == "" || strings.HasPrefix(content, "[") {
			continue
		}
		if len(content) > minSubstantive {
			return content
		}
	}
	return ""
}

func finalize(text string, det *termination.Detector) string {
	if out := det.Strip(text); out != "" {
		return out
	}
	return FallbackResult
}

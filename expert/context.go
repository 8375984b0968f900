package expert

import (
	"fmt"
	"sync"
)

// Default learner context values. The deployment targets Vietnamese secondary
// students, so unset fields fall back to Vietnamese-curriculum defaults.
const (
	DefaultLanguage     = "vi"
	DefaultStudentLevel = "HS phổ thông"
	DefaultCurriculum   = "VN K-12"
	DefaultGoals        = "Hiểu sâu khái niệm và làm bài tập có hướng dẫn"
)

// Context carries learner personalization shared by every expert in a roster.
// It is safe for concurrent access.
type Context struct {
	mu           sync.RWMutex
	language     string
	studentLevel string
	curriculum   string
	goals        string
}

// NewContext returns a Context populated with the defaults.
func NewContext() *Context {
	return &Context{
		language:     DefaultLanguage,
		studentLevel: DefaultStudentLevel,
		curriculum:   DefaultCurriculum,
		goals:        DefaultGoals,
	}
}

// Merge overlays non-empty values from m onto the context. Recognized keys:
// language, student_level, curriculum, goals. Unknown keys are ignored.
func (c *Context) Merge(m map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range m {
		if v == "" {
			continue
		}
		switch k {
		case "language":
			c.language = v
		case "student_level":
			c.studentLevel = v
		case "curriculum":
			c.curriculum = v
		case "goals":
			c.goals = v
		}
	}
}

// Language returns the response language code.
func (c *Context) Language() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.language
}

// Suffix renders the personalization block appended to each expert's
// instructions. The wording is stable so idempotence checks can rely on it.
func (c *Context) Suffix() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return fmt.Sprintf(
		"Always respond in %s. Student level: %s. Curriculum: %s. Goals: %s.",
		c.language, c.studentLevel, c.curriculum, c.goals,
	)
}

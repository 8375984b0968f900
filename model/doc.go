// Package model defines the normalized request/response contract between the
// expert roster and concrete LLM backends, plus a deterministic mock for
// tests. Provider adapters live in subpackages.
package model

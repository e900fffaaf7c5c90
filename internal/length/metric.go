// Package length measures text spans for chunk sizing.
package length

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Method selects how chunk size is counted.
type Method string

const (
	MethodCharacters Method = "CHARACTERS"
	MethodTokens     Method = "TOKENS"
)

// ParseMethod accepts method names case-insensitively.
func ParseMethod(s string) (Method, error) {
	switch Method(strings.ToUpper(strings.TrimSpace(s))) {
	case MethodCharacters, "":
		return MethodCharacters, nil
	case MethodTokens:
		return MethodTokens, nil
	default:
		return "", fmt.Errorf("size count method %q is not supported (must be CHARACTERS or TOKENS)", s)
	}
}

// Metric measures the size of a text span.
type Metric interface {
	Measure(text string) int
}

// Oracle counts tokens with a loaded tokenizer.
type Oracle interface {
	Count(text string) int
}

// Characters counts code points.
type Characters struct{}

func (Characters) Measure(text string) int { return utf8.RuneCountInString(text) }

// Tokens delegates measurement to a tokenizer oracle.
type Tokens struct {
	Oracle Oracle
}

func (t Tokens) Measure(text string) int {
	if text == "" {
		return 0
	}
	return t.Oracle.Count(text)
}

// New builds the metric for method. For TOKENS the tokenizer for model is
// loaded once here and shared by every measurement of the run.
func New(method Method, model, cacheDir string) (Metric, error) {
	switch method {
	case MethodCharacters:
		return Characters{}, nil
	case MethodTokens:
		oracle, err := NewTiktokenOracle(model, cacheDir)
		if err != nil {
			return nil, err
		}
		return Tokens{Oracle: oracle}, nil
	default:
		return nil, fmt.Errorf("size count method %q is not supported", method)
	}
}

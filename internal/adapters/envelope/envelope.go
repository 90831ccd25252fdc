package envelope

// Package envelope extracts user-displayable messages from API error
// responses. The backend wraps errors in a nested envelope; the message
// location is a JMESPath expression so alternate envelope shapes can be
// accommodated by configuration.

import (
	"encoding/json"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// DefaultMessagePath locates the message in the standard error envelope.
const DefaultMessagePath = "error.message"

// Evaluator abstracts JMESPath operations for testability.
type Evaluator interface {
	Evaluate(expr string, data any) (any, error)
}

// libEvaluator implements Evaluator using go-jmespath.
type libEvaluator struct{}

func (libEvaluator) Evaluate(expr string, data any) (any, error) {
	return jmespath.Search(expr, data)
}

// Extractor pulls the display message out of an error response body.
type Extractor struct {
	expr string
	eval Evaluator
}

// NewExtractor creates an Extractor for the given JMESPath expression.
// An empty expression uses DefaultMessagePath.
func NewExtractor(expr string) *Extractor {
	if strings.TrimSpace(expr) == "" {
		expr = DefaultMessagePath
	}
	return &Extractor{expr: expr, eval: libEvaluator{}}
}

// Message returns the extracted message, or "" when the body is not JSON,
// the path matches nothing, or the match is not a non-empty string. The
// caller supplies its own generic fallback.
func (e *Extractor) Message(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return ""
	}
	result, err := e.eval.Evaluate(e.expr, data)
	if err != nil {
		return ""
	}
	msg, ok := result.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(msg)
}

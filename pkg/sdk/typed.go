package sdk

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TypedFunc is the strongly typed form of a command body.
type TypedFunc[In, Out any] func(widgetID string, engine *EngineInterface, input In) (Out, error)

// NewTyped wraps fn as a Command, decoding the JSON payload into In and
// encoding the returned Out as JSON. An empty or all-whitespace payload is
// treated as JSON null, so commands without input can take a pointer or
// optional type and receive the zero value.
func NewTyped[In, Out any](name string, fn TypedFunc[In, Out]) Command {
	return &typedCommand[In, Out]{name: name, fn: fn}
}

type typedCommand[In, Out any] struct {
	name string
	fn   TypedFunc[In, Out]
}

func (c *typedCommand[In, Out]) Name() string { return c.name }

func (c *typedCommand[In, Out]) Run(widgetID string, engine *EngineInterface, payload string) (string, error) {
	if strings.TrimSpace(payload) == "" {
		payload = "null"
	}

	var in In
	if err := json.Unmarshal([]byte(payload), &in); err != nil {
		return "", fmt.Errorf("command %s: decode payload: %w", c.name, err)
	}

	out, err := c.fn(widgetID, engine, in)
	if err != nil {
		return "", fmt.Errorf("command %s: %w", c.name, err)
	}

	encoded, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("command %s: encode result: %w", c.name, err)
	}
	return string(encoded), nil
}

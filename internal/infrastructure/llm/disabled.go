package llm

import (
	"context"

	"NewsSimplifier/internal/ports"
)

// Disabled is selected when no provider is configured.
type Disabled struct{}

var _ ports.Generator = Disabled{}

func (Disabled) GenerateJSON(context.Context, string) (string, error) {
	return "", ports.ErrGeneratorUnavailable
}

package nbtest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aretw0/nbtest/pkg/domain"
)

// InjectOption configures a single Inject call.
type InjectOption func(*injectConfig)

type injectConfig struct {
	prerun []Ref
}

// WithPrerun executes the referenced cells before the injected one.
func WithPrerun(refs ...Ref) InjectOption {
	return func(cfg *injectConfig) {
		cfg.prerun = append(cfg.prerun, refs...)
	}
}

// Inject appends a new code cell holding the given code to the notebook and
// executes it. The code is dedented first, so indented raw string literals
// inject cleanly.
func (c *Client) Inject(ctx context.Context, code string, opts ...InjectOption) (*domain.Cell, error) {
	var cfg injectConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(cfg.prerun) > 0 {
		if _, err := c.Execute(ctx, cfg.prerun...); err != nil {
			return nil, fmt.Errorf("prerun: %w", err)
		}
	}

	idx := c.nb.Append(domain.NewCodeCell(dedent(code)))
	c.logger.Debug("injecting cell", "index", idx)

	cell, err := c.exec.ExecuteCell(ctx, c.nb, idx)
	if err != nil {
		return cell, fmt.Errorf("execute injected cell %d: %w", idx, err)
	}
	return cell, nil
}

// Def carries a function's name and serialized source text for injection.
type Def struct {
	Name   string
	Source string
}

// InjectFunc injects a function definition followed by a call to it in the
// same cell. Arguments are JSON-encoded, which covers every JSON-compatible
// Go value.
func (c *Client) InjectFunc(ctx context.Context, fn Def, args ...any) (*domain.Cell, error) {
	if fn.Name == "" || fn.Source == "" {
		return nil, fmt.Errorf("function name and source are required")
	}

	encoded := make([]string, len(args))
	for i, arg := range args {
		data, err := json.Marshal(arg)
		if err != nil {
			return nil, fmt.Errorf("encode argument %d: %w", i, err)
		}
		encoded[i] = string(data)
	}

	var sb strings.Builder
	sb.WriteString(dedent(fn.Source))
	sb.WriteString("\n\n# Calling ")
	sb.WriteString(fn.Name)
	sb.WriteString("\n")
	sb.WriteString(fn.Name)
	sb.WriteString("(")
	sb.WriteString(strings.Join(encoded, ", "))
	sb.WriteString(")\n")

	return c.Inject(ctx, sb.String())
}

// jsonValueSnippet round-trips the last expression value through a JSON
// display payload, so it comes back as structured data instead of a repr.
const jsonValueSnippet = `
from IPython.display import JSON
JSON({"value" : _})
`

// Value extracts a JSON-compatible variable value from the running session.
// It injects the bare expression, verifies it produced an execute_result,
// then injects a JSON display call and decodes the payload.
func (c *Client) Value(ctx context.Context, name string) (any, error) {
	result, err := c.Inject(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(result.ExecuteResults()) == 0 {
		return nil, fmt.Errorf("%q: %w", name, domain.ErrNoExecuteResult)
	}

	cell, err := c.Inject(ctx, jsonValueSnippet)
	if err != nil {
		return nil, err
	}
	if len(cell.Outputs) == 0 {
		return nil, fmt.Errorf("value round-trip for %q produced no output: %w", name, domain.ErrNoExecuteResult)
	}

	payload, ok := cell.Outputs[0].Data["application/json"]
	if !ok {
		return nil, fmt.Errorf("value round-trip for %q: missing application/json payload", name)
	}
	wrapper, ok := payload.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("value round-trip for %q: unexpected payload type %T", name, payload)
	}
	return wrapper["value"], nil
}

// dedent strips the longest common leading whitespace from every non-blank
// line, so indented Go raw strings inject as valid top-level code.
// Whitespace-only lines are normalized to empty.
func dedent(s string) string {
	lines := strings.Split(s, "\n")

	margin := ""
	first := true
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			margin = indent
			first = false
			continue
		}
		for !strings.HasPrefix(indent, margin) {
			margin = margin[:len(margin)-1]
		}
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}
		lines[i] = strings.TrimPrefix(line, margin)
	}
	return strings.Join(lines, "\n")
}

package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/aretw0/nbtest/pkg/domain"
)

// HandlerFunc produces outputs for a cell source. It is the fallback when no
// scripted rule matches.
type HandlerFunc func(source string) ([]domain.Output, error)

// Rule maps a source fragment to canned outputs.
type Rule struct {
	// Match is a substring of the cell source. Rules are checked in
	// registration order; the first match wins.
	Match string

	Outputs []domain.Output
	Err     error
}

// Executor is a scripted ports.CellExecutor for tests and embedded use.
// It never runs code: responses come from registered rules or a handler.
// Safe for concurrent use.
type Executor struct {
	mu      sync.Mutex
	rules   []Rule
	handler HandlerFunc
	count   int
}

// Option configures the executor.
type Option func(*Executor)

// WithRule registers a scripted response for sources containing match.
func WithRule(match string, outputs ...domain.Output) Option {
	return func(e *Executor) {
		e.rules = append(e.rules, Rule{Match: match, Outputs: outputs})
	}
}

// WithFailure registers a scripted error for sources containing match.
func WithFailure(match string, err error) Option {
	return func(e *Executor) {
		e.rules = append(e.rules, Rule{Match: match, Err: err})
	}
}

// WithHandler sets the fallback handler for unmatched sources.
func WithHandler(h HandlerFunc) Option {
	return func(e *Executor) {
		e.handler = h
	}
}

// NewExecutor creates a scripted executor.
func NewExecutor(opts ...Option) *Executor {
	e := &Executor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExecuteCell satisfies ports.CellExecutor.
// Non-code cells pass through untouched, mirroring real notebook execution.
func (e *Executor) ExecuteCell(ctx context.Context, nb *domain.Notebook, index int) (*domain.Cell, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cell, err := nb.Cell(index)
	if err != nil {
		return nil, err
	}
	if cell.Type != domain.CellTypeCode {
		return cell, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	source := string(cell.Source)
	outputs, found, err := e.respond(source)
	if err != nil {
		return cell, err
	}
	if !found && e.handler != nil {
		outputs, err = e.handler(source)
		if err != nil {
			return cell, err
		}
	}

	e.count++
	count := e.count
	cell.Outputs = outputs
	if cell.Outputs == nil {
		cell.Outputs = []domain.Output{}
	}
	cell.ExecutionCount = &count
	return cell, nil
}

func (e *Executor) respond(source string) ([]domain.Output, bool, error) {
	for _, rule := range e.rules {
		if strings.Contains(source, rule.Match) {
			if rule.Err != nil {
				return nil, true, rule.Err
			}
			return rule.Outputs, true, nil
		}
	}
	return nil, false, nil
}

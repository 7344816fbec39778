package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// OutputType constants match the nbformat output_type values.
const (
	// OutputTypeStream carries literal text written to stdout or stderr.
	OutputTypeStream = "stream"
	// OutputTypeExecuteResult carries the value of the last expression as a MIME bundle.
	OutputTypeExecuteResult = "execute_result"
	// OutputTypeDisplayData carries rich display payloads as a MIME bundle.
	OutputTypeDisplayData = "display_data"
	// OutputTypeError carries an exception raised during execution.
	OutputTypeError = "error"
)

// MIMEBundle maps a MIME type to its payload (e.g. "text/plain" -> "42").
type MIMEBundle map[string]any

// Output is the tagged variant over notebook output kinds. Which fields are
// populated depends on Type.
type Output struct {
	Type string `json:"output_type"`

	// Stream outputs.
	Name string        `json:"name,omitempty"`
	Text MultilineText `json:"text,omitempty"`

	// Execute results and display data.
	Data           MIMEBundle     `json:"data,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	ExecutionCount *int           `json:"execution_count,omitempty"`

	// Error outputs.
	Ename     string   `json:"ename,omitempty"`
	Evalue    string   `json:"evalue,omitempty"`
	Traceback []string `json:"traceback,omitempty"`
}

// NewStreamOutput builds a stream output. Name is "stdout" or "stderr".
func NewStreamOutput(name, text string) Output {
	return Output{
		Type: OutputTypeStream,
		Name: name,
		Text: MultilineText(text),
	}
}

// NewExecuteResult builds an execute_result output from a MIME bundle.
func NewExecuteResult(data MIMEBundle) Output {
	return Output{
		Type: OutputTypeExecuteResult,
		Data: data,
	}
}

// NewDisplayData builds a display_data output from a MIME bundle.
func NewDisplayData(data MIMEBundle) Output {
	return Output{
		Type: OutputTypeDisplayData,
		Data: data,
	}
}

// NewErrorOutput builds an error output.
func NewErrorOutput(ename, evalue string, traceback ...string) Output {
	return Output{
		Type:      OutputTypeError,
		Ename:     ename,
		Evalue:    evalue,
		Traceback: traceback,
	}
}

// MultilineText is a string that decodes from either a JSON string or a JSON
// array of line fragments. nbformat serializers emit both layouts.
type MultilineText string

// UnmarshalJSON accepts "text" and ["te", "xt"] alike.
func (m *MultilineText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = MultilineText(s)
		return nil
	}

	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return fmt.Errorf("multiline text: expected string or string array: %w", err)
	}
	*m = MultilineText(strings.Join(lines, ""))
	return nil
}

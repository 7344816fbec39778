package dto

import (
	"github.com/mitchellh/mapstructure"
)

// CellMetadata is the typed view of a cell's metadata map.
// It uses "mapstructure" tags to match the keys nbformat and frontend tooling
// (Jupyter, VS Code) write into cell metadata.
type CellMetadata struct {
	Name string   `json:"name" mapstructure:"name"`
	Tags []string `json:"tags" mapstructure:"tags"`

	// Frontend display hints.
	Collapsed bool             `json:"collapsed" mapstructure:"collapsed"`
	Jupyter   *JupyterMetadata `json:"jupyter" mapstructure:"jupyter"`

	// Execution bookkeeping written by some frontends.
	ExecutionTiming map[string]any `json:"execution" mapstructure:"execution"`
}

// JupyterMetadata holds the "jupyter" namespace of cell metadata.
type JupyterMetadata struct {
	SourceHidden  bool `json:"source_hidden" mapstructure:"source_hidden"`
	OutputsHidden bool `json:"outputs_hidden" mapstructure:"outputs_hidden"`
}

// Decode converts a raw metadata map into the typed view.
// Unknown keys are ignored so documents from newer frontends still decode.
func Decode(meta map[string]any) (CellMetadata, error) {
	var out CellMetadata
	if err := mapstructure.Decode(meta, &out); err != nil {
		return CellMetadata{}, err
	}
	return out, nil
}

// Package domain defines the notebook document model shared by the client,
// executors, and adapters.
//
// The types mirror the nbformat v4 JSON layout (cells, outputs, MIME bundles)
// so documents produced by other notebook tooling decode directly with
// encoding/json. This package only declares and lightly indexes these shapes;
// it does not implement a file format or an execution protocol of its own.
package domain

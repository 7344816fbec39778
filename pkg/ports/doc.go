// Package ports defines the interfaces between the nbtest client and its
// external collaborators: cell executors, notebook loaders, and session
// stores. The client owns none of these concerns; adapters under
// pkg/adapters provide the concrete implementations.
package ports

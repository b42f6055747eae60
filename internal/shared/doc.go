// Package shared holds the failure kinds and filesystem abstraction consumed
// by the confsync reconcile services.
package shared

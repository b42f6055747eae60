// Package versions implements the confsync sync command: dependency version
// synchronization across package manifests against the root manifest, plus the
// drift-audit report assembled from the audit engine.
package versions

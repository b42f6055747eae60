// Package manifest implements the confsync manifest command: assembling the
// canonical root package manifest from the protected root keys and every
// fragment file discovered beneath the fragment directory.
package manifest

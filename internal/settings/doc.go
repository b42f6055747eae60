// Package settings merges base and optional local editor settings documents
// into the canonical settings file and supports a check mode that verifies the
// persisted file is byte-for-byte current.
package settings

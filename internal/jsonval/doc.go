// Package jsonval models JSON-like values with insertion-ordered objects and
// provides JSONC-tolerant decoding, canonical pretty-printed encoding, and
// key-order-insensitive structural equality.
//
// Objects preserve the key order of their source document so that encoded
// output round-trips the way the authors wrote it, while Equal compares the
// sorted union of keys so reordering a document never counts as a change.
package jsonval

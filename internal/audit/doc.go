// Package audit implements the cross-file aggregation and drift-audit engine
// behind the confsync sync report.
//
// The engine consumes one root mapping and an ordered list of file-scoped
// mappings and derives four independent findings: keys used anywhere, root
// keys missing from every file, entries whose file value diverges from the
// root value, and keys duplicated across two or more files. It performs no
// file or process access of its own.
package audit

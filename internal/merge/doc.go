// Package merge implements the recursive deep-merge engine and the ordered
// key-filter projection shared by the confsync manifest and settings commands.
package merge

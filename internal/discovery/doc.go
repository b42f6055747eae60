// Package discovery locates configuration fragment files beneath a directory
// tree in deterministic sorted order.
package discovery

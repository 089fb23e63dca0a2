/*
Package session coordinates concurrent edits of stored automata.

It provides a Manager that serializes read-modify-write cycles per automaton ID,
integrating local locks with optional distributed locking so several server
replicas can share one store.
*/
package session

// Package notes is the client half of sharenote.
//
// A Client talks to the note store over HTTP. State and Draft are immutable
// values changed only through the reducer functions in state.go. A Session
// ties the two together and never changes local state until the store has
// confirmed the operation.
package notes

// Package memory implements the in-memory storage mechanism.
//
// Values live in an ordered map that is mirrored, after every mutation, into
// a tab-scoped string Slot as a JSON object. A new Mechanism over the same
// slot starts with the values left there by the previous one.
package memory

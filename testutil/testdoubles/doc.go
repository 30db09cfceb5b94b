// Package testdoubles provides spies and stubs for the lending collaborators and
// observability interfaces.
//
// All doubles are safe for concurrent use, so they can be shared by tests that
// drive a lending.Manager from several goroutines.
package testdoubles

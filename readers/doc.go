// Package readers provides implementations of lending.UserStatusOracle.
//
// The in-memory Registry keeps the reader directory in process memory and is what the demo and the tests use
// to "make a reader active". The postgres subpackage answers the same question from a readers table.
package readers

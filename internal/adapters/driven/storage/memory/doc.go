// Package memory provides in-memory implementations of driven ports for
// service tests.
package memory

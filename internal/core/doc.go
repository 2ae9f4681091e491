// Package core provides the business logic layer for clipd.
//
// This package sits between the cobra commands (and the Bubbletea UI)
// and the lower-level store, crypto and clipboard packages. Functions
// here return errors instead of printing to stdout/stderr; the caller
// decides how to present them.
//
// Anything that needs the master key takes it as a *crypto.MasterKey
// argument and never retains it. Key lifetime is owned by the command
// that unlocked the database.
package core

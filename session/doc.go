// Package session provides SessionStore implementations. Only an in-memory
// store ships today; history does not outlive the process.
package session

// Package ui implements the terminal browser for scan results using Bubbletea.
//
// The App drives a core.Session: it starts scans, polls the session's
// mailbox once per tick without blocking, and renders whatever tree the
// session last received.
package ui

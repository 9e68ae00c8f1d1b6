// Package connectors provides implementations of the PageSource
// interface for external knowledge sources. Each connector knows how
// to fetch topic pages from a specific source; Wikipedia is the only
// source today.
package connectors

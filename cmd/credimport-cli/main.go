// Package main provides the credimport offline CLI.
//
// The CLI re-runs extraction against previously captured report
// snapshots without a browser or a live session.
//
// Usage:
//
//	credimport-cli reparse report.html
//	credimport-cli services
//
// See --help for all available options.
package main

func main() {
	Execute()
}

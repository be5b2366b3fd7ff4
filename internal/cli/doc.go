// Package cli implements the command-line interface for quiz-results.
//
// The cli package provides the Cobra-based CLI: serve runs the result notifier
// as an HTTP service, send validates a single submission and delivers it to
// Telegram, and preview prints the message a submission would produce.
package cli

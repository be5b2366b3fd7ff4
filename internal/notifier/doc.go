// Package notifier defines how formatted quiz result messages are delivered.
//
// The Telegram client satisfies Notifier directly. DryRunNotifier prints
// messages instead of sending them, for local runs without credentials.
package notifier

// Package telegram provides Telegram Bot API integration for quiz result notifications.
//
// The package renders quiz submissions as HTML-formatted messages and sends them
// to a single chat through the Bot API sendMessage method. Responses are checked
// for the "ok" flag; a rejected message is reported as an *APIError.
//
// Authentication requires a bot token (from @BotFather) and chat ID.
package telegram

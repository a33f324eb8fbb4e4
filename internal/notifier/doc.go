// Package notifier provides the delivery boundary for match notifications.
//
// A Notifier takes a fully formatted message and delivers it. The Telegram
// implementation splits long messages to respect the Bot API size limit; the
// dry-run implementation prints what would be sent.
package notifier

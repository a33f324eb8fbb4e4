// Package telegram formats match snapshots as Telegram messages and delivers them
// through the Telegram Bot API.
//
// Messages use Telegram's HTML parse mode and are sent with the sendMessage method
// over HTTP GET, with every parameter carried in the query string. Authentication
// requires a bot token (from @BotFather) and a chat ID.
package telegram

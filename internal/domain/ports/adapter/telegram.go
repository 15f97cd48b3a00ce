package adapter

import "context"

// TelegramBotAdapter is the outbound messaging port. Implementations send
// with Markdown parse mode since reply templates carry emphasis markup.
type TelegramBotAdapter interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

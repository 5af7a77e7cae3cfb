package notify

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
)

// sender is the slice of the bot API the notifier needs; it lets tests swap
// out the real bot.
type sender interface {
	SendMessage(ctx context.Context, params *telego.SendMessageParams) (*telego.Message, error)
}

// Telegram announces published posts to a chat. When the bot token or chat id
// is missing the notifier is constructed disabled and every Notify call is a
// logged no-op.
type Telegram struct {
	bot    sender
	chatID telego.ChatID
	logger *log.Logger
}

func NewTelegram(token, chatID string, logger *log.Logger) *Telegram {
	if logger == nil {
		logger = log.Default()
	}

	t := &Telegram{logger: logger}
	if token == "" || chatID == "" {
		return t
	}

	bot, err := telego.NewBot(token)
	if err != nil {
		logger.Printf("telegram bot init failed, notifications disabled: %v", err)
		return t
	}

	t.bot = bot
	t.chatID = parseChatID(chatID)
	return t
}

// Notify sends the fixed-format announcement. It logs the outcome and never
// returns an error: a notification failure must not touch the publish result.
func (t *Telegram) Notify(ctx context.Context, title, postURL string) {
	if t.bot == nil {
		t.logger.Println("telegram not configured - skipping notification")
		return
	}

	text := fmt.Sprintf("💊 New health post published!\n\n%s\n\n%s", title, postURL)

	if _, err := t.bot.SendMessage(ctx, tu.Message(t.chatID, text)); err != nil {
		t.logger.Printf("telegram notification failed: %v", err)
		return
	}

	t.logger.Println("telegram notification sent")
}

// parseChatID accepts either a numeric chat id or an @channel username.
func parseChatID(chatID string) telego.ChatID {
	if id, err := strconv.ParseInt(chatID, 10, 64); err == nil {
		return tu.ID(id)
	}
	return tu.Username(chatID)
}

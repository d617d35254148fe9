package enroll

import (
	"context"
	"errors"
	"fmt"

	"github.com/bhabibullo/Education-Bot/core/logger"

	tele "gopkg.in/telebot.v4"
	"log/slog"
)

// Channel summary tags. The channel audience reads uz, so summaries are
// always built in the uz locale regardless of the session language.
const (
	TagConfirmed = "#Tasdiqlandi"
	TagCancelled = "#Bekor_qilindi"
	TagModified  = "#O`zgartirmoqchi"
)

// SummaryText renders the channel notification for a session snapshot.
func SummaryText(tag string, s Session) string {
	return fmt.Sprintf("%s\nIsm: %s\nKurs: %s\nSubkurs: %s\nKun: %s\nVaqti: %s\nTelefon: %s",
		tag, s.Name, s.Course, s.Subcourse, s.Day, s.Time, s.Phone)
}

var errNotifierUnset = errors.New("notifier: not configured")

// Notifier delivers a summary to a notification destination.
type Notifier interface {
	Notify(ctx context.Context, destination int64, text string) error
}

// ChannelNotifier sends summaries to Telegram channels. Sends are synchronous
// so the caller observes delivery failures; retries are left to the bot's
// HTTP client.
type ChannelNotifier struct {
	bot *tele.Bot
}

// NewChannelNotifier builds a notifier on top of an initialized bot.
func NewChannelNotifier(bot *tele.Bot) *ChannelNotifier {
	return &ChannelNotifier{bot: bot}
}

// Notify sends text to the channel identified by destination.
func (n *ChannelNotifier) Notify(ctx context.Context, destination int64, text string) error {
	if n.bot == nil {
		return fmt.Errorf("notifier: bot is not initialized")
	}
	if _, err := n.bot.Send(tele.ChatID(destination), text); err != nil {
		return fmt.Errorf("notifier: send to %d failed: %w", destination, err)
	}
	logger.LogEvent(ctx, logger.SVCNotify, slog.LevelDebug, "summary delivered",
		slog.Int64("dest", destination),
	)
	return nil
}

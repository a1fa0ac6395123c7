package tg

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Spok95/hifz-contest/internal/observability"
)

// Считаем системными: 5xx, 429, timeout. 400-ки и типичные телеграм-валидации в Sentry не шлём.
func isSystemErr(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	if strings.Contains(s, "Bad Request") ||
		strings.Contains(s, "chat not found") ||
		strings.Contains(s, "can't parse entities") {
		return false
	}
	return strings.Contains(s, "429") || strings.Contains(s, "502") ||
		strings.Contains(s, "503") || strings.Contains(s, "timeout")
}

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier шлёт короткие объявления конкурса в один чат.
type Notifier struct {
	bot    sender
	chatID int64
	log    *zap.Logger
}

func NewNotifier(token string, chatID int64, log *zap.Logger) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return newNotifier(bot, chatID, log), nil
}

func newNotifier(bot sender, chatID int64, log *zap.Logger) *Notifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Notifier{bot: bot, chatID: chatID, log: log}
}

func (n *Notifier) Notify(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := n.bot.Send(tgbotapi.NewMessage(n.chatID, text))
	if err != nil {
		if isSystemErr(err) {
			observability.CaptureErr(err)
		}
		n.log.Warn("telegram send failed", zap.Int64("chat_id", n.chatID), zap.Error(err))
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

// Nop: уведомления выключены.
type Nop struct{}

func (Nop) Notify(context.Context, string) error { return nil }

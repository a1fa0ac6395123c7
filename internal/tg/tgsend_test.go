package tg

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type fakeBot struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.err != nil {
		return tgbotapi.Message{}, f.err
	}
	f.sent = append(f.sent, c.(tgbotapi.MessageConfig))
	return tgbotapi.Message{}, nil
}

func TestNotify(t *testing.T) {
	bot := &fakeBot{}
	n := newNotifier(bot, 42, nil)
	if err := n.Notify(context.Background(), "تم تقييم نصف المتسابقين"); err != nil {
		t.Fatal(err)
	}
	if len(bot.sent) != 1 || bot.sent[0].ChatID != 42 || bot.sent[0].Text != "تم تقييم نصف المتسابقين" {
		t.Fatalf("неожиданное сообщение: %+v", bot.sent)
	}
}

func TestNotify_Error(t *testing.T) {
	n := newNotifier(&fakeBot{err: errors.New("Bad Request: chat not found")}, 1, nil)
	if err := n.Notify(context.Background(), "x"); err == nil {
		t.Fatal("ожидали ошибку отправки")
	}
}

func TestIsSystemErr(t *testing.T) {
	cases := map[string]bool{
		"Too Many Requests: retry after 5 (429)": true,
		"502 Bad Gateway":                        true,
		"i/o timeout":                            true,
		"Bad Request: chat not found":            false,
	}
	for msg, want := range cases {
		if got := isSystemErr(errors.New(msg)); got != want {
			t.Fatalf("isSystemErr(%q) = %v, ожидали %v", msg, got, want)
		}
	}
	if isSystemErr(nil) {
		t.Fatal("nil не ошибка")
	}
}

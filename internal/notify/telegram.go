// Package notify pushes booking confirmations to a Telegram chat.
package notify

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"lacquer/internal/domain"
)

// TelegramNotifier sends booking lifecycle messages.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger zerolog.Logger
}

// NewTelegramNotifier creates a notifier. An empty token disables sending;
// messages are then logged and dropped.
func NewTelegramNotifier(token string, chatID int64, logger zerolog.Logger) (*TelegramNotifier, error) {
	n := &TelegramNotifier{
		chatID: chatID,
		logger: logger.With().Str("component", "notify").Logger(),
	}
	if token == "" {
		n.logger.Warn().Msg("telegram bot token is empty, notifications disabled")
		return n, nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	n.bot = bot
	return n, nil
}

// BookingConfirmed announces a freshly confirmed booking.
func (n *TelegramNotifier) BookingConfirmed(b domain.Booking) {
	n.send(FormatBookingConfirmed(&b))
}

// BookingReminder nudges about a booking the day before the appointment.
func (n *TelegramNotifier) BookingReminder(b domain.Booking) {
	n.send(fmt.Sprintf("⏰ Reminder: *%s* tomorrow at %s (%s)", b.StoreName, b.Time, b.Date.Format("02.01.2006")))
}

// BookingCancelled announces a cancelled booking.
func (n *TelegramNotifier) BookingCancelled(b domain.Booking) {
	n.send(fmt.Sprintf("❌ Booking cancelled: %s at %s", b.StoreName, b.Date.Format("02.01.2006")))
}

func (n *TelegramNotifier) send(text string) {
	if n.bot == nil {
		n.logger.Debug().Str("text", text).Msg("notification skipped (bot disabled)")
		return
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = "Markdown"

	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Error().Err(err).Int64("chat_id", n.chatID).Msg("failed to send telegram notification")
	}
}

// FormatBookingConfirmed formats a booking summary message.
func FormatBookingConfirmed(b *domain.Booking) string {
	names := make([]string, 0, len(b.Services))
	for _, svc := range b.Services {
		names = append(names, svc.Name)
	}
	staff := string(b.Staff)
	if staff == "" {
		staff = "any available"
	}

	return fmt.Sprintf(`✅ *Booking confirmed!*

💅 *Salon:* %s
🗓 *Date:* %s at %s
✨ *Services:* %s
👤 *Technician:* %s
💰 *Total:* $%d.%02d (%d min)`,
		b.StoreName,
		b.Date.Format("02.01.2006"),
		b.Time,
		strings.Join(names, ", "),
		staff,
		b.TotalPriceCents/100, b.TotalPriceCents%100,
		b.TotalDurationMinutes,
	)
}

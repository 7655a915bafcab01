// Package notify delivers finished results as Telegram alerts. Delivery is
// best-effort; failures are reported to the caller as false and never
// affect the stored result.
package notify

import (
	"context"
	"fmt"

	"investai/internal/api"
	"investai/internal/logger"
	"investai/internal/types"
)

// TelegramNotifier posts alert cards to a Telegram chat.
type TelegramNotifier struct {
	client   *api.Client
	botToken string
	chatID   string
}

// NewTelegramNotifier creates a notifier for the given credentials. Empty
// credentials produce an inactive notifier.
func NewTelegramNotifier(botToken, chatID string) *TelegramNotifier {
	return &TelegramNotifier{
		client:   api.NewClient(api.WithBaseURL("https://api.telegram.org")),
		botToken: botToken,
		chatID:   chatID,
	}
}

// Active reports whether both credentials are configured.
func (n *TelegramNotifier) Active() bool {
	return n.botToken != "" && n.chatID != ""
}

// SendResultCard delivers the formatted research alert.
func (n *TelegramNotifier) SendResultCard(ctx context.Context, result *types.ResearchResult) bool {
	text := fmt.Sprintf("INVESTAI ALERT\nEntity: %s\nScore: %d\nVerdict: %s\nFinancial: %d\nFounders: %d\nSocial: %d",
		result.Entity, result.Score, result.Verdict,
		result.Financials.Score, result.Founders.Score, result.Social.Score)
	return n.send(ctx, text)
}

// SendTest delivers a connectivity check message.
func (n *TelegramNotifier) SendTest(ctx context.Context) bool {
	return n.send(ctx, "InvestAI test message: Telegram channel is connected.")
}

func (n *TelegramNotifier) send(ctx context.Context, text string) bool {
	if !n.Active() {
		return false
	}
	_, err := n.client.POST(ctx, "/bot"+n.botToken+"/sendMessage", map[string]string{
		"chat_id": n.chatID,
		"text":    text,
	})
	if err != nil {
		logger.Warn(ctx, "Telegram delivery failed", "error", err)
		return false
	}
	return true
}

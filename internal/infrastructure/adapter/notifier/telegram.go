package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Alex-KostPy/roofnn/internal/domain/entity"
	coreport "github.com/Alex-KostPy/roofnn/internal/domain/port/core"
)

const telegramAPIBase = "https://api.telegram.org"

// TelegramNotifier delivers moderation alerts to the admin chat via the
// Telegram Bot API, with inline approve/reject buttons
type TelegramNotifier struct {
	botToken    string
	adminChatID int64
	client      *http.Client
	logger      coreport.Logger
}

// NewTelegramNotifier creates a new Telegram moderation notifier
func NewTelegramNotifier(botToken string, adminChatID int64, logger coreport.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		botToken:    botToken,
		adminChatID: adminChatID,
		client:      &http.Client{Timeout: 10 * time.Second},
		logger:      logger,
	}
}

type inlineButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

type inlineKeyboard struct {
	InlineKeyboard [][]inlineButton `json:"inline_keyboard"`
}

type sendMessageRequest struct {
	ChatID      int64          `json:"chat_id"`
	Text        string         `json:"text"`
	ReplyMarkup inlineKeyboard `json:"reply_markup"`
}

// NotifyNewSpot sends the moderation alert for a freshly submitted spot
func (n *TelegramNotifier) NotifyNewSpot(ctx context.Context, spot *entity.Spot) error {
	if n.botToken == "" || n.adminChatID == 0 {
		return fmt.Errorf("telegram notifier is not configured")
	}

	text := fmt.Sprintf(
		"New spot pending moderation:\nID: %d\nTitle: %s\nCoordinates: %g, %g\nTutorial: %s",
		spot.ID, spot.Title, spot.Lat, spot.Lon, spot.ContentURL,
	)
	if spot.Danger != "" {
		text += "\nDanger: " + spot.Danger
	}

	payload := sendMessageRequest{
		ChatID: n.adminChatID,
		Text:   text,
		ReplyMarkup: inlineKeyboard{
			InlineKeyboard: [][]inlineButton{{
				{Text: "Approve (+40)", CallbackData: fmt.Sprintf("approve_%d", spot.ID)},
				{Text: "Reject", CallbackData: fmt.Sprintf("reject_%d", spot.ID)},
			}},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal sendMessage payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", telegramAPIBase, n.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build sendMessage request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send moderation alert: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API returned status %d", resp.StatusCode)
	}
	return nil
}

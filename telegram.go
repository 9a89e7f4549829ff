package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/carlmjohnson/requests"
)

const telegramBaseURL = "https://api.telegram.org/bot"

func (a *postPilot) sendTelegramMessage(text, botToken, chatID string) error {
	result := struct {
		OK bool `json:"ok"`
	}{}
	err := requests.
		URL(telegramBaseURL+botToken+"/sendMessage").
		Client(a.httpClient).
		Method(http.MethodPost).
		Param("chat_id", chatID).
		Param("text", text).
		ToJSON(&result).
		Fetch(context.Background())
	if err != nil {
		return err
	}
	if !result.OK {
		return fmt.Errorf("failed to send Telegram message")
	}
	return nil
}

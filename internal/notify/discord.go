package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Discord embed colors.
const (
	ColorRed    = 15548997 // 0xed4245
	ColorYellow = 16776960 // 0xffff00
)

// Discord posts an embed to a Discord webhook.
type Discord struct {
	session   *discordgo.Session
	webhookID string
	token     string
	color     int
}

// DiscordOption configures Discord.
type DiscordOption func(*Discord)

// WithHTTPClient sets the HTTP client used for webhook calls.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *Discord) {
		d.session.Client = c
	}
}

// WithColor sets the embed color.
func WithColor(color int) DiscordOption {
	return func(d *Discord) {
		d.color = color
	}
}

// NewDiscord creates a notifier for a webhook URL of the form
// https://discord.com/api/webhooks/{id}/{token}.
func NewDiscord(webhookURL string, opts ...DiscordOption) (*Discord, error) {
	id, token, err := parseWebhookURL(webhookURL)
	if err != nil {
		return nil, err
	}

	// Webhook execution is authenticated by the token in the URL.
	session, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Client = &http.Client{Timeout: 10 * time.Second}

	d := &Discord{
		session:   session,
		webhookID: id,
		token:     token,
		color:     ColorRed,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Notify implements Notifier.
func (d *Discord) Notify(ctx context.Context, title, message string) error {
	params := &discordgo.WebhookParams{
		Username: "claude-usage",
		Embeds: []*discordgo.MessageEmbed{{
			Title:       title,
			Description: message,
			Color:       d.color,
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
		}},
	}

	if _, err := d.session.WebhookExecute(d.webhookID, d.token, false, params, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("discord webhook: %w", err)
	}
	return nil
}

func parseWebhookURL(raw string) (id, token string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("invalid discord webhook URL: %w", err)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+2 < len(parts); i++ {
		if parts[i] == "webhooks" && parts[i+1] != "" && parts[i+2] != "" {
			return parts[i+1], parts[i+2], nil
		}
	}
	return "", "", fmt.Errorf("invalid discord webhook URL: expected .../webhooks/{id}/{token}")
}

package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const maxMessageLen = 4096

type Handler struct {
	bot *Bot
}

func NewHandler(bot *Bot) *Handler {
	return &Handler{bot: bot}
}

func (h *Handler) HandleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg == nil {
		return
	}

	h.bot.logger.Info("received message",
		zap.Int64("chat_id", msg.Chat.ID),
		zap.Bool("is_command", msg.IsCommand()),
	)

	if msg.IsCommand() {
		h.handleCommand(ctx, msg)
		return
	}

	h.handleChat(ctx, msg)
}

func (h *Handler) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		h.bot.Send(msg.Chat.ID, "Hi! Ask me anything. When your question needs fresh information I will search the web first.")
	case "help":
		h.bot.Send(msg.Chat.ID, helpText(h.bot.cfg))
	default:
		h.bot.Send(msg.Chat.ID, "Unknown command. Use /help.")
	}
}

func (h *Handler) handleChat(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if msg.Text == "" {
		return
	}

	if !h.bot.rateLimiter.Allow(chatID) {
		h.bot.RecordRateLimitHit(chatID)
		h.bot.Send(chatID, "Too many requests, please slow down.")
		return
	}

	h.bot.SendTyping(chatID)

	answer, err := h.respond(ctx, msg.Text)
	if err != nil {
		h.bot.logger.Error("failed to generate answer",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		h.bot.Send(chatID, "Something went wrong, please try again later.")
		return
	}

	for _, part := range SplitMessage(FormatAnswer(answer), maxMessageLen) {
		if err := h.bot.Send(chatID, part); err != nil {
			h.bot.logger.Error("failed to send reply", zap.Error(err))
			return
		}
	}
}

// respond builds the system prompt for one turn, augmenting it with search
// results when the utterance triggers a search, and asks the model. A search
// failure never fails the turn; an LLM failure does.
func (h *Handler) respond(ctx context.Context, utterance string) (string, error) {
	system := h.bot.cfg.SystemPrompt

	if h.bot.cfg.SearchEnabled {
		system = h.bot.augmenter.Augment(ctx, utterance, h.bot.cfg.SearchConfig, system)
	}

	return h.bot.llm.CompleteWithSystem(ctx, system, utterance)
}

func helpText(cfg BotConfig) string {
	state := "disabled"
	if cfg.SearchEnabled {
		state = fmt.Sprintf("enabled (%s)", cfg.SearchConfig.Kind)
	}
	return "Send me a message and I will answer with the configured language model.\n" +
		"Web search is " + state + ".\n" +
		"Phrases like \"search for\", \"latest news\" or \"what is\" trigger a search."
}

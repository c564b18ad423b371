package telegram

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/akudrin/websearch-bot/internal/llm"
	"github.com/akudrin/websearch-bot/internal/metrics"
	"github.com/akudrin/websearch-bot/internal/ratelimit"
	"github.com/akudrin/websearch-bot/internal/search"
	"github.com/akudrin/websearch-bot/internal/websearch"
)

type BotConfig struct {
	Token             string
	Debug             bool
	RequestsPerMinute int

	// Per-agent conversation settings.
	SystemPrompt  string
	SearchEnabled bool
	SearchConfig  search.ProviderConfig
}

type Bot struct {
	api         *tgbotapi.BotAPI
	augmenter   *websearch.Augmenter
	llm         llm.Client
	cfg         BotConfig
	logger      *zap.Logger
	metrics     *metrics.Metrics
	handler     *Handler
	rateLimiter *ratelimit.Limiter
	wg          sync.WaitGroup
}

func New(cfg BotConfig, augmenter *websearch.Augmenter, llmClient llm.Client, logger *zap.Logger, m *metrics.Metrics) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	api.Debug = cfg.Debug

	bot := newBot(cfg, augmenter, llmClient, logger, m)
	bot.api = api

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
	)

	return bot, nil
}

// newBot builds a bot without the API handle; handlers no-op on sends,
// which is how tests exercise the message flow offline.
func newBot(cfg BotConfig, augmenter *websearch.Augmenter, llmClient llm.Client, logger *zap.Logger, m *metrics.Metrics) *Bot {
	bot := &Bot{
		augmenter: augmenter,
		llm:       llmClient,
		cfg:       cfg,
		logger:    logger,
		metrics:   m,
		rateLimiter: ratelimit.New(ratelimit.Config{
			RequestsPerMinute: cfg.RequestsPerMinute,
		}),
	}
	bot.handler = NewHandler(bot)
	return bot
}

// Serve runs update polling and the metrics endpoint until ctx is done.
func (b *Bot) Serve(ctx context.Context, metricsAddr string) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return b.Run(ctx)
	})

	if metricsAddr != "" {
		srv := &http.Server{Addr: metricsAddr, Handler: metrics.Handler()}

		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})

		g.Go(func() error {
			if err := srv.ListenAndServe(); err != http.ErrServerClosed {
				return err
			}
			return nil
		})
	}

	return g.Wait()
}

func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	b.logger.Info("bot started, waiting for updates")

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("bot stopping, waiting for handlers to finish")
			b.api.StopReceivingUpdates()
			b.wg.Wait()
			b.rateLimiter.Stop()
			b.logger.Info("all handlers finished")
			return ctx.Err()
		case update := <-updates:
			if update.Message == nil {
				continue
			}
			b.wg.Add(1)
			go func(upd tgbotapi.Update) {
				defer b.wg.Done()
				b.handleUpdate(ctx, upd)
			}(update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	startTime := time.Now()

	defer func() {
		if r := recover(); r != nil {
			chatID := int64(0)
			if update.Message != nil && update.Message.Chat != nil {
				chatID = update.Message.Chat.ID
			}
			b.logger.Error("panic in update handler",
				zap.Any("panic", r),
				zap.Int64("chat_id", chatID),
			)
			if b.metrics != nil {
				b.metrics.RecordRequest("message", "panic", time.Since(startTime))
			}
		}
	}()

	b.handler.HandleMessage(ctx, update.Message)

	if b.metrics != nil {
		reqType := "command"
		if update.Message != nil && !update.Message.IsCommand() {
			reqType = "chat"
		}
		b.metrics.RecordRequest(reqType, "processed", time.Since(startTime))
	}
}

func (b *Bot) Send(chatID int64, text string) error {
	if b.api == nil {
		return nil
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "HTML"
	msg.DisableWebPagePreview = true
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) SendTyping(chatID int64) {
	if b.api == nil {
		return
	}
	action := tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)
	b.api.Send(action)
}

func (b *Bot) RecordRateLimitHit(chatID int64) {
	if b.metrics != nil {
		b.metrics.RecordRateLimitHit(strconv.FormatInt(chatID, 10))
	}
}

package telegram

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Narrator is a recitation offered in the settings screen.
type Narrator struct {
	ID   string
	Name string
}

// Options tune the chat surface.
type Options struct {
	Narrators      []Narrator
	QuestionCounts []int
	AnswerDelay    time.Duration // pause between answer feedback and the next question
}

// advanceEvent asks the update loop to move past an answered question.
type advanceEvent struct {
	chatID int64
	number int
}

type Handler struct {
	bot      BotAPI
	logger   *zap.Logger
	game     GameService
	messages MessageStorage
	opts     Options

	advance chan advanceEvent
}

func NewHandler(
	bot BotAPI,
	logger *zap.Logger,
	game GameService,
	messages MessageStorage,
	opts Options,
) *Handler {
	return &Handler{
		bot:      bot,
		logger:   logger,
		game:     game,
		messages: messages,
		opts:     opts,
		advance:  make(chan advanceEvent, 64),
	}
}

// Run processes updates and delayed quiz steps on a single goroutine until ctx is done.
func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			h.handleUpdate(ctx, update)
		case ev := <-h.advance:
			h.handleAdvance(ctx, ev)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	chatID := update.Message.Chat.ID
	h.logger.Debug("update received",
		zap.Int64("chat_id", chatID),
		zap.String("text", update.Message.Text),
	)

	if update.Message.IsCommand() {
		h.handleCommand(ctx, update.Message)
		return
	}

	if h.game.AwaitingName(chatID) {
		_ = h.withErrorHandling(h.handleLogin(update.Message.Text))(ctx, chatID)
		return
	}

	if !h.game.LoggedIn(chatID) {
		_ = h.send(newMessage(chatID, md(msgPressStart)))
		return
	}

	_ = h.send(newMessage(chatID, md(msgUseMenu)))
}

// scheduleAdvance delivers an advance event back to the update loop after the answer delay.
func (h *Handler) scheduleAdvance(ctx context.Context, ev advanceEvent) {
	time.AfterFunc(h.opts.AnswerDelay, func() {
		select {
		case h.advance <- ev:
		case <-ctx.Done():
		}
	})
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message", zap.Error(err))
		return err
	}
	return nil
}

func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.logger.Debug("callback answer error", zap.Error(err))
	}
}

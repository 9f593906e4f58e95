package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/hifz-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/hifz-quiz-bot/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	chatID := cb.Message.Chat.ID
	msgID := cb.Message.MessageID
	data := decodeCallback(cb.Data)

	switch data.Action {
	case actionAnswer:
		h.handleAnswerCallback(ctx, cb, data)
		return
	case actionNoop:
		h.answerCallback(cb.ID, "")
		return
	}

	var fn HandlerFunc

	switch data.Action {
	case actionMenu, actionProfile:
		fn = h.screen(h.renderMenu, msgID)

	case actionPick:
		fn = h.screen(h.renderPicker, msgID)

	case actionPage:
		page, ok := data.intParam(0)
		if !ok {
			fn = failWith(entities.ErrInvalidScope)
			break
		}
		fn = h.startPage(page)

	case actionRange:
		start, ok1 := data.intParam(0)
		end, ok2 := data.intParam(1)
		if !ok1 || !ok2 {
			fn = failWith(entities.ErrInvalidScope)
			break
		}
		fn = h.startQuiz(func(ctx context.Context, chatID int64) (*service.QuizStep, error) {
			return h.game.StartCustomRange(ctx, chatID, start, end)
		})

	case actionStore:
		fn = h.screen(h.renderStore, msgID)

	case actionBuy:
		fn = h.handleBuy(data.param(0), msgID)

	case actionChallenge:
		if len(data.Params) == 0 {
			fn = h.screen(h.renderChallenges, msgID)
			break
		}
		id := data.param(0)
		fn = h.startQuiz(func(ctx context.Context, chatID int64) (*service.QuizStep, error) {
			return h.game.StartChallenge(ctx, chatID, id)
		})

	case actionSettings:
		fn = h.handleSettingsCallback(data, msgID)

	default:
		h.logger.Debug("unknown callback", zap.String("data", cb.Data))
		h.answerCallback(cb.ID, "")
		return
	}

	// Remove the user's "clock".
	h.answerCallback(cb.ID, "")

	_ = h.withErrorHandling(fn)(ctx, chatID)
}

func failWith(err error) HandlerFunc {
	return func(context.Context, int64) error {
		return err
	}
}

// handleBuy purchases an item and refreshes the store screen.
func (h *Handler) handleBuy(itemID string, messageID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		res, err := h.game.Purchase(ctx, chatID, itemID)
		if err != nil {
			return err
		}

		if err := h.send(newMessage(chatID, formatPurchase(res))); err != nil {
			return err
		}

		return h.screen(h.renderStore, messageID)(ctx, chatID)
	}
}

func (h *Handler) handleSettingsCallback(data callbackData, messageID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		switch data.param(0) {
		case settingsNarrator:
			if err := h.game.SetNarrator(chatID, data.param(1)); err != nil {
				return err
			}

		case settingsCount:
			n, ok := data.intParam(1)
			if !ok {
				return service.ErrInvalidQuestionsCount
			}
			if err := h.game.SetQuestionsCount(chatID, n); err != nil {
				return err
			}
		}

		return h.screen(h.renderSettings, messageID)(ctx, chatID)
	}
}

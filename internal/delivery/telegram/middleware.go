package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/hifz-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/hifz-quiz-bot/internal/service"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling turns handler errors into a notice for the user.
func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		err := fn(ctx, chatID)
		if err == nil {
			return nil
		}

		text, known := userMessage(err)
		if known {
			h.logger.Info("request rejected",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
		} else {
			h.logger.Error("handle error",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
		}

		_ = h.send(newMessage(chatID, md(text)))
		return nil
	}
}

// userMessage maps an error to the notice shown in chat. The bool is false for
// unexpected errors.
func userMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, service.ErrNotLoggedIn):
		return msgPressStart, true
	case errors.Is(err, service.ErrEmptyName):
		return msgEmptyName, true
	case errors.Is(err, service.ErrPlayerLookup):
		return msgPlayerLookupFailed, true
	case errors.Is(err, service.ErrContentFetch):
		return msgContentUnavailable, true
	case errors.Is(err, service.ErrNotEnoughAyahs):
		return msgNotEnoughAyahs, true
	case errors.Is(err, service.ErrNoActiveGenerators):
		return msgNoGenerators, true
	case errors.Is(err, service.ErrRangeNotOwned):
		return msgRangeNotOwned, true
	case errors.Is(err, entities.ErrInvalidScope):
		return msgInvalidRange, true
	case errors.Is(err, service.ErrInsufficientFunds):
		return msgInsufficientFunds, true
	case errors.Is(err, service.ErrAlreadyOwned):
		return msgAlreadyOwned, true
	case errors.Is(err, service.ErrItemNotFound):
		return msgItemNotFound, true
	case errors.Is(err, service.ErrChallengeNotFound):
		return msgChallengeGone, true
	case errors.Is(err, service.ErrNoActiveQuiz),
		errors.Is(err, service.ErrStaleQuestion),
		errors.Is(err, entities.ErrAlreadyAnswered),
		errors.Is(err, entities.ErrInvalidChoice),
		errors.Is(err, entities.ErrNoPendingQuestion):
		return msgStaleQuestion, true
	case errors.Is(err, service.ErrUnknownNarrator),
		errors.Is(err, service.ErrInvalidQuestionsCount):
		return msgInvalidSetting, true
	default:
		return msgInternalError, false
	}
}

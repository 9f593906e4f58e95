package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/hifz-quiz-bot/internal/service"
	"github.com/aliskhannn/hifz-quiz-bot/internal/storage"
)

type startFunc func(ctx context.Context, chatID int64) (*service.QuizStep, error)

// startQuiz starts a quiz and sends its first question.
func (h *Handler) startQuiz(start startFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		step, err := start(ctx, chatID)
		if err != nil {
			return err
		}
		return h.sendQuestion(chatID, step)
	}
}

// sendQuestion sends the recitation and the question with its answer keyboard.
func (h *Handler) sendQuestion(chatID int64, step *service.QuizStep) error {
	if step.Title != "" {
		_ = h.send(newMessage(chatID, bold("🏆 "+step.Title)))
	}

	if url := step.Question.AudioURL; url != "" {
		audio := tgbotapi.NewAudio(chatID, tgbotapi.FileURL(url))
		// The question is still answerable without audio.
		_ = h.send(audio)
	}

	msg := newMessage(chatID, formatQuestion(step))
	msg.ReplyMarkup = buildAnswerKeyboard(step.Question, step.Number)

	sent, err := h.bot.Send(msg)
	if err != nil {
		h.logger.Error("failed to send question",
			zap.Int64("chat_id", chatID),
			zap.Int("question", step.Number),
			zap.Error(err),
		)
		return err
	}

	prev, ok := h.messages.UpsertAndGetPrev(chatID, sent.MessageID, step.Number)
	if ok && prev.MessageID != sent.MessageID {
		h.closeKeyboard(prev)
	}

	return nil
}

// closeKeyboard removes the answer buttons of a question that was never answered.
func (h *Handler) closeKeyboard(m storage.QuestionMessage) {
	edit := tgbotapi.NewEditMessageReplyMarkup(m.ChatID, m.MessageID, tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
	})
	if _, err := h.bot.Send(edit); err != nil {
		h.logger.Debug("close question keyboard",
			zap.Int64("chat_id", m.ChatID),
			zap.Int("message_id", m.MessageID),
			zap.Error(err),
		)
	}
}

func (h *Handler) handleAnswerCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) {
	chatID := cb.Message.Chat.ID

	number, ok1 := data.intParam(0)
	choice, ok2 := data.intParam(1)
	if !ok1 || !ok2 {
		h.answerCallback(cb.ID, msgStaleQuestion)
		return
	}

	outcome, err := h.game.Answer(chatID, number, choice)
	if err != nil {
		text, known := userMessage(err)
		if !known {
			h.logger.Error("answer failed",
				zap.Int64("chat_id", chatID),
				zap.Int("question", number),
				zap.Error(err),
			)
		}
		h.answerCallback(cb.ID, text)
		return
	}

	if outcome.Result.Correct {
		h.answerCallback(cb.ID, "✅")
	} else {
		h.answerCallback(cb.ID, "❌")
	}

	step := &service.QuizStep{
		Question: outcome.Question,
		Number:   outcome.Number,
		Total:    outcome.Total,
		Score:    outcome.Score,
	}
	text := formatQuestion(step) + "\n\n" + formatAnswerFeedback(outcome.Result)

	edit := tgbotapi.NewEditMessageTextAndMarkup(
		chatID,
		cb.Message.MessageID,
		text,
		buildAnsweredKeyboard(outcome.Question, outcome.Result),
	)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	_ = h.send(edit)

	h.messages.Delete(chatID)
	h.scheduleAdvance(ctx, advanceEvent{chatID: chatID, number: outcome.Number})
}

// handleAdvance sends the next question or the final result.
func (h *Handler) handleAdvance(ctx context.Context, ev advanceEvent) {
	adv, err := h.game.Advance(ctx, ev.chatID, ev.number)
	if err != nil {
		if errors.Is(err, service.ErrStaleQuestion) ||
			errors.Is(err, service.ErrNoActiveQuiz) ||
			errors.Is(err, service.ErrNotLoggedIn) {
			h.logger.Debug("skip advance",
				zap.Int64("chat_id", ev.chatID),
				zap.Int("question", ev.number),
				zap.Error(err),
			)
			return
		}
		_ = h.withErrorHandling(failWith(err))(ctx, ev.chatID)
		return
	}

	if adv.Next != nil {
		_ = h.withErrorHandling(func(context.Context, int64) error {
			return h.sendQuestion(ev.chatID, adv.Next)
		})(ctx, ev.chatID)
		return
	}

	msg := newMessage(ev.chatID, formatQuizResult(adv.Result))
	msg.ReplyMarkup = buildQuizResultKeyboard()
	_ = h.send(msg)
}

package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/hifz-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/hifz-quiz-bot/internal/service"
)

// screenFunc renders a screen of the bot for a chat.
type screenFunc func(chatID int64) (string, tgbotapi.InlineKeyboardMarkup, error)

func (h *Handler) handleCommand(ctx context.Context, m *tgbotapi.Message) {
	chatID := m.Chat.ID

	switch m.Command() {
	case "start":
		h.handleStart(ctx, chatID)

	case "menu", "profile":
		_ = h.withErrorHandling(h.screen(h.renderMenu, 0))(ctx, chatID)

	case "quiz":
		_ = h.withErrorHandling(h.handleQuiz())(ctx, chatID)

	case "range":
		_ = h.withErrorHandling(h.handleRange(m.CommandArguments()))(ctx, chatID)

	case "store":
		_ = h.withErrorHandling(h.screen(h.renderStore, 0))(ctx, chatID)

	case "challenges":
		_ = h.withErrorHandling(h.screen(h.renderChallenges, 0))(ctx, chatID)

	case "settings":
		_ = h.withErrorHandling(h.screen(h.renderSettings, 0))(ctx, chatID)

	case "help":
		_ = h.send(newMessage(chatID, md(msgHelp)))

	case "logout":
		h.game.Logout(chatID)
		h.messages.Delete(chatID)
		_ = h.send(newMessage(chatID, md(msgLoggedOut)))

	default:
		_ = h.send(newMessage(chatID, md(msgUnknownCommand)))
	}
}

func (h *Handler) handleStart(ctx context.Context, chatID int64) {
	if h.game.LoggedIn(chatID) {
		_ = h.withErrorHandling(h.screen(h.renderMenu, 0))(ctx, chatID)
		return
	}

	h.game.BeginLogin(chatID)
	_ = h.send(newMessage(chatID, md(msgWelcome)))
}

// handleLogin treats text as the player name.
func (h *Handler) handleLogin(name string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		profile, created, err := h.game.Login(ctx, chatID, name)
		if err != nil {
			return err
		}

		greeting := fmt.Sprintf("مرحباً بعودتك، %s! 👋", profile.Player.Name)
		if created {
			greeting = fmt.Sprintf("مرحباً بك أيها اللاعب الجديد، %s! 🌱", profile.Player.Name)
		}
		if err := h.send(newMessage(chatID, md(greeting))); err != nil {
			return err
		}

		return h.screen(h.renderMenu, 0)(ctx, chatID)
	}
}

// handleQuiz resumes the pending question or opens the page picker.
func (h *Handler) handleQuiz() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		step, err := h.game.Current(chatID)
		if err == nil && !step.Question.Answered() {
			if err := h.send(newMessage(chatID, md("📝 نكمل الاختبار..."))); err != nil {
				return err
			}
			return h.sendQuestion(chatID, step)
		}
		if err != nil && !errors.Is(err, service.ErrNoActiveQuiz) {
			return err
		}

		return h.screen(h.renderPicker, 0)(ctx, chatID)
	}
}

// handleRange starts a quiz over the pages given as "/range N M".
func (h *Handler) handleRange(argsStr string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		args := strings.Fields(argsStr)
		if len(args) != 2 {
			return h.send(newMessage(chatID, md(msgUseRange)))
		}

		start, errStart := strconv.Atoi(args[0])
		end, errEnd := strconv.Atoi(args[1])
		if errStart != nil || errEnd != nil {
			return h.send(newMessage(chatID, md(msgInvalidRange)))
		}

		return h.startQuiz(func(ctx context.Context, chatID int64) (*service.QuizStep, error) {
			return h.game.StartCustomRange(ctx, chatID, start, end)
		})(ctx, chatID)
	}
}

// screen sends a rendered screen, or replaces messageID with it when non-zero.
func (h *Handler) screen(render screenFunc, messageID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		text, kb, err := render(chatID)
		if err != nil {
			return err
		}

		if messageID == 0 {
			msg := newMessage(chatID, text)
			msg.ReplyMarkup = kb
			return h.send(msg)
		}

		edit := newEdit(chatID, messageID, text)
		edit.ReplyMarkup = &kb
		if _, err := h.bot.Send(edit); err != nil {
			// Unchanged content is rejected by Telegram; nothing to do.
			h.logger.Debug("edit screen", zap.Int64("chat_id", chatID), zap.Error(err))
		}
		return nil
	}
}

func (h *Handler) renderMenu(chatID int64) (string, tgbotapi.InlineKeyboardMarkup, error) {
	profile, err := h.game.Profile(chatID)
	if err != nil {
		return "", tgbotapi.InlineKeyboardMarkup{}, err
	}
	return formatProfile(profile, h.opts.Narrators), buildMenuKeyboard(), nil
}

func (h *Handler) renderPicker(chatID int64) (string, tgbotapi.InlineKeyboardMarkup, error) {
	profile, err := h.game.Profile(chatID)
	if err != nil {
		return "", tgbotapi.InlineKeyboardMarkup{}, err
	}
	return md("📖 " + msgChoosePages), buildPagePickerKeyboard(profile.Pages, profile.Ranges), nil
}

func (h *Handler) renderStore(chatID int64) (string, tgbotapi.InlineKeyboardMarkup, error) {
	entries, diamonds, err := h.game.Store(chatID)
	if err != nil {
		return "", tgbotapi.InlineKeyboardMarkup{}, err
	}
	return formatStore(entries, diamonds), buildStoreKeyboard(entries), nil
}

func (h *Handler) renderChallenges(chatID int64) (string, tgbotapi.InlineKeyboardMarkup, error) {
	if !h.game.LoggedIn(chatID) {
		return "", tgbotapi.InlineKeyboardMarkup{}, service.ErrNotLoggedIn
	}
	challenges := h.game.Challenges()
	return formatChallenges(challenges), buildChallengesKeyboard(challenges), nil
}

func (h *Handler) renderSettings(chatID int64) (string, tgbotapi.InlineKeyboardMarkup, error) {
	settings := h.game.Settings(chatID)
	return formatSettings(settings, h.opts.Narrators),
		buildSettingsKeyboard(settings, h.opts.Narrators, h.opts.QuestionCounts),
		nil
}

// startPage starts a quiz over a single page chosen in the picker.
func (h *Handler) startPage(page int) HandlerFunc {
	return h.startQuiz(func(ctx context.Context, chatID int64) (*service.QuizStep, error) {
		return h.game.StartQuiz(ctx, chatID, entities.PageScope(page))
	})
}

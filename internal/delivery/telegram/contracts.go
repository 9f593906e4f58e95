package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/hifz-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/hifz-quiz-bot/internal/service"
	"github.com/aliskhannn/hifz-quiz-bot/internal/storage"
)

// BotAPI is the part of *tgbotapi.BotAPI the handler uses.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type GameService interface {
	BeginLogin(chatID int64)
	AwaitingName(chatID int64) bool
	LoggedIn(chatID int64) bool
	Login(ctx context.Context, chatID int64, name string) (*service.Profile, bool, error)
	Logout(chatID int64)
	Profile(chatID int64) (*service.Profile, error)

	StartQuiz(ctx context.Context, chatID int64, scope entities.Scope) (*service.QuizStep, error)
	StartCustomRange(ctx context.Context, chatID int64, start, end int) (*service.QuizStep, error)
	StartChallenge(ctx context.Context, chatID int64, challengeID string) (*service.QuizStep, error)
	Challenges() []entities.Challenge
	Current(chatID int64) (*service.QuizStep, error)
	Answer(chatID int64, number, choice int) (*service.AnswerOutcome, error)
	Advance(ctx context.Context, chatID int64, number int) (*service.Advance, error)

	Store(chatID int64) ([]service.StoreEntry, int, error)
	Purchase(ctx context.Context, chatID int64, itemID string) (*service.PurchaseResult, error)

	Settings(chatID int64) service.Settings
	SetNarrator(chatID int64, narrator string) error
	SetQuestionsCount(chatID int64, n int) error
}

type MessageStorage interface {
	UpsertAndGetPrev(chatID int64, messageID, number int) (storage.QuestionMessage, bool)
	Get(chatID int64) (storage.QuestionMessage, bool)
	Delete(chatID int64)
}

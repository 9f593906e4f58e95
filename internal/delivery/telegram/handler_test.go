package telegram

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/hifz-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/hifz-quiz-bot/internal/service"
	"github.com/aliskhannn/hifz-quiz-bot/internal/storage"
)

type fakeBot struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	nextID   int
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, c)
	b.nextID++
	return tgbotapi.Message{MessageID: b.nextID}, nil
}

func (b *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (b *fakeBot) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return make(chan tgbotapi.Update)
}

func (b *fakeBot) StopReceivingUpdates() {}

func (b *fakeBot) messages() []tgbotapi.MessageConfig {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []tgbotapi.MessageConfig
	for _, c := range b.sent {
		if m, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, m)
		}
	}
	return out
}

func (b *fakeBot) callbackTexts() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []string
	for _, c := range b.requests {
		if cb, ok := c.(tgbotapi.CallbackConfig); ok {
			out = append(out, cb.Text)
		}
	}
	return out
}

// fakeGame implements only what a test sets; other calls panic.
type fakeGame struct {
	GameService

	awaiting bool
	loggedIn bool
	profile  *service.Profile

	loginName string
	answer    func(number, choice int) (*service.AnswerOutcome, error)
	advance   func(number int) (*service.Advance, error)
}

func (g *fakeGame) AwaitingName(int64) bool { return g.awaiting }
func (g *fakeGame) LoggedIn(int64) bool     { return g.loggedIn }

func (g *fakeGame) Login(_ context.Context, _ int64, name string) (*service.Profile, bool, error) {
	g.loginName = name
	if strings.TrimSpace(name) == "" {
		return nil, false, service.ErrEmptyName
	}
	g.awaiting = false
	g.loggedIn = true
	return g.profile, true, nil
}

func (g *fakeGame) Profile(int64) (*service.Profile, error) {
	if !g.loggedIn {
		return nil, service.ErrNotLoggedIn
	}
	return g.profile, nil
}

func (g *fakeGame) Answer(_ int64, number, choice int) (*service.AnswerOutcome, error) {
	return g.answer(number, choice)
}

func (g *fakeGame) Advance(_ context.Context, _ int64, number int) (*service.Advance, error) {
	return g.advance(number)
}

func testProfile() *service.Profile {
	return &service.Profile{
		Player:   entities.Player{Name: "Ahmad", XP: 40, Diamonds: 5},
		Level:    entities.LevelInfo{Level: 1, Title: "مبتدئ", CurrentXP: 40, NextLevelXP: 100, Progress: 40},
		Pages:    []int{1, 2},
		Ranges:   []service.PageRange{{Start: 1, End: 2}},
		Settings: service.Settings{Narrator: "ar.alafasy", QuestionsCount: 5},
	}
}

func testQuestion() *entities.Question {
	return &entities.Question{
		Kind:   entities.QuestionLocateAyah,
		Prompt: "where",
		Options: []entities.Option{
			{Key: "beginning", Label: "بداية الصفحة"},
			{Key: "middle", Label: "وسط الصفحة"},
			{Key: "end", Label: "نهاية الصفحة"},
		},
		CorrectKey:    "middle",
		CorrectAnswer: "وسط الصفحة",
	}
}

func newTestHandler(game *fakeGame) (*Handler, *fakeBot) {
	bot := &fakeBot{}
	h := NewHandler(bot, zap.NewNop(), game, storage.NewMessageStorage(), Options{
		Narrators:      []Narrator{{ID: "ar.alafasy", Name: "مشاري العفاسي"}},
		QuestionCounts: []int{5, 10},
	})
	return h, bot
}

func messageUpdate(chatID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			Chat: &tgbotapi.Chat{ID: chatID},
			Text: text,
		},
	}
}

func callbackUpdate(chatID int64, messageID int, data string) tgbotapi.Update {
	return tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:   "cb",
			From: &tgbotapi.User{ID: chatID},
			Message: &tgbotapi.Message{
				MessageID: messageID,
				Chat:      &tgbotapi.Chat{ID: chatID},
			},
			Data: data,
		},
	}
}

func TestHandleUpdate_Login(t *testing.T) {
	game := &fakeGame{awaiting: true, profile: testProfile()}
	h, bot := newTestHandler(game)

	h.handleUpdate(context.Background(), messageUpdate(1, "Ahmad"))

	if game.loginName != "Ahmad" {
		t.Fatalf("Login name = %q, want %q", game.loginName, "Ahmad")
	}

	msgs := bot.messages()
	if len(msgs) != 2 {
		t.Fatalf("sent %d messages, want 2 (greeting and menu)", len(msgs))
	}
	if !strings.Contains(msgs[0].Text, "Ahmad") {
		t.Errorf("greeting %q does not contain the player name", msgs[0].Text)
	}
	if _, ok := msgs[1].ReplyMarkup.(tgbotapi.InlineKeyboardMarkup); !ok {
		t.Errorf("menu ReplyMarkup = %T, want InlineKeyboardMarkup", msgs[1].ReplyMarkup)
	}
}

func TestHandleUpdate_EmptyName(t *testing.T) {
	game := &fakeGame{awaiting: true, profile: testProfile()}
	h, bot := newTestHandler(game)

	h.handleUpdate(context.Background(), messageUpdate(1, "   "))

	msgs := bot.messages()
	if len(msgs) != 1 {
		t.Fatalf("sent %d messages, want 1", len(msgs))
	}
	if msgs[0].Text != md(msgEmptyName) {
		t.Errorf("text = %q, want %q", msgs[0].Text, md(msgEmptyName))
	}
	if !game.awaiting {
		t.Error("still awaiting name = false, want true")
	}
}

func TestHandleUpdate_NotLoggedIn(t *testing.T) {
	h, bot := newTestHandler(&fakeGame{})

	h.handleUpdate(context.Background(), messageUpdate(1, "hello"))

	msgs := bot.messages()
	if len(msgs) != 1 || msgs[0].Text != md(msgPressStart) {
		t.Fatalf("messages = %+v, want a single start notice", msgs)
	}
}

func TestHandleCallback_AnswerSchedulesAdvance(t *testing.T) {
	q := testQuestion()
	game := &fakeGame{
		loggedIn: true,
		answer: func(number, choice int) (*service.AnswerOutcome, error) {
			res, err := q.Answer(choice)
			if err != nil {
				return nil, err
			}
			return &service.AnswerOutcome{Result: res, Question: q, Number: number, Total: 5, Score: 1}, nil
		},
	}
	h, bot := newTestHandler(game)

	h.handleUpdate(context.Background(), callbackUpdate(1, 10, buildAnswerCallback(2, 1)))

	if got := bot.callbackTexts(); len(got) != 1 || got[0] != "✅" {
		t.Errorf("callback answers = %v, want [✅]", got)
	}

	select {
	case ev := <-h.advance:
		if ev.chatID != 1 || ev.number != 2 {
			t.Errorf("advance event = %+v, want chat 1 question 2", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("advance was not scheduled")
	}

	bot.mu.Lock()
	defer bot.mu.Unlock()
	var edited bool
	for _, c := range bot.sent {
		if e, ok := c.(tgbotapi.EditMessageTextConfig); ok && e.MessageID == 10 {
			edited = true
			if e.ReplyMarkup == nil {
				t.Error("answered question has no keyboard")
			}
		}
	}
	if !edited {
		t.Error("question message was not edited with feedback")
	}
}

func TestHandleCallback_StaleAnswer(t *testing.T) {
	game := &fakeGame{
		loggedIn: true,
		answer: func(int, int) (*service.AnswerOutcome, error) {
			return nil, service.ErrStaleQuestion
		},
	}
	h, bot := newTestHandler(game)

	h.handleUpdate(context.Background(), callbackUpdate(1, 10, buildAnswerCallback(1, 0)))

	if got := bot.callbackTexts(); len(got) != 1 || got[0] != msgStaleQuestion {
		t.Errorf("callback answers = %v, want [%s]", got, msgStaleQuestion)
	}
	select {
	case ev := <-h.advance:
		t.Fatalf("unexpected advance %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHandleAdvance(t *testing.T) {
	tests := []struct {
		name      string
		advance   func(int) (*service.Advance, error)
		wantSends int
		wantText  string
	}{
		{
			name: "next question",
			advance: func(n int) (*service.Advance, error) {
				return &service.Advance{Next: &service.QuizStep{Question: testQuestion(), Number: n + 1, Total: 5}}, nil
			},
			wantSends: 1,
			wantText:  "where",
		},
		{
			name: "result",
			advance: func(int) (*service.Advance, error) {
				return &service.Advance{Result: &service.QuizResult{Score: 5, Total: 5, EarnedXP: 70, Perfect: true, Saved: true}}, nil
			},
			wantSends: 1,
			wantText:  "5/5",
		},
		{
			name: "stale",
			advance: func(int) (*service.Advance, error) {
				return nil, service.ErrStaleQuestion
			},
		},
		{
			name: "no quiz",
			advance: func(int) (*service.Advance, error) {
				return nil, service.ErrNoActiveQuiz
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, bot := newTestHandler(&fakeGame{loggedIn: true, advance: tt.advance})

			h.handleAdvance(context.Background(), advanceEvent{chatID: 1, number: 1})

			msgs := bot.messages()
			if len(msgs) != tt.wantSends {
				t.Fatalf("sent %d messages, want %d", len(msgs), tt.wantSends)
			}
			if tt.wantText != "" && !strings.Contains(msgs[0].Text, md(tt.wantText)) {
				t.Errorf("text %q does not contain %q", msgs[0].Text, tt.wantText)
			}
		})
	}
}

func TestSendQuestion_ClosesPreviousKeyboard(t *testing.T) {
	h, bot := newTestHandler(&fakeGame{loggedIn: true})

	step := &service.QuizStep{Question: testQuestion(), Number: 1, Total: 5}
	if err := h.sendQuestion(1, step); err != nil {
		t.Fatalf("sendQuestion: %v", err)
	}
	if err := h.sendQuestion(1, step); err != nil {
		t.Fatalf("sendQuestion: %v", err)
	}

	bot.mu.Lock()
	defer bot.mu.Unlock()
	var closed int
	for _, c := range bot.sent {
		if e, ok := c.(tgbotapi.EditMessageReplyMarkupConfig); ok {
			closed++
			if e.MessageID != 1 {
				t.Errorf("closed message %d, want 1", e.MessageID)
			}
		}
	}
	if closed != 1 {
		t.Errorf("closed %d keyboards, want 1", closed)
	}
}

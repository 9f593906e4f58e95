package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/hifz-quiz-bot/internal/domain/entities"
)

// GameOptions are the player-selectable settings and their defaults.
type GameOptions struct {
	DefaultNarrator  string
	Narrators        []string
	DefaultQuestions int
	QuestionCounts   []int
}

// Settings is the current selection of a chat.
type Settings struct {
	Narrator       string
	QuestionsCount int
}

// Profile is the player summary shown on the main screen.
type Profile struct {
	Player   entities.Player
	Level    entities.LevelInfo
	Theme    string // name of the active theme, empty when none is owned
	Pages    []int
	Ranges   []PageRange
	Settings Settings
}

// QuizStep is a question ready to be shown.
type QuizStep struct {
	Question *entities.Question
	Number   int // 1-based position of the question
	Total    int
	Score    int
	Title    string // set on the first step of a challenge quiz
}

// AnswerOutcome is the feedback for one answered question.
type AnswerOutcome struct {
	Result   entities.AnswerResult
	Question *entities.Question
	Number   int
	Total    int
	Score    int
	Last     bool // no further question will be asked
}

// QuizResult is the end-of-quiz summary.
type QuizResult struct {
	Score         int
	Total         int
	EarnedXP      int
	BonusDiamonds int
	Perfect       bool
	LevelUp       *entities.LevelUp
	Level         entities.LevelInfo
	Diamonds      int
	Saved         bool
}

// Advance is what follows an answered question: the next step or the result.
type Advance struct {
	Next   *QuizStep
	Result *QuizResult
}

// StoreEntry is a catalog item together with its ownership for one player.
type StoreEntry struct {
	Item  entities.StoreItem
	Owned bool
}

// GameService coordinates the per-chat game: login, quizzes, store and challenges.
// It is not safe for concurrent use; callers serialise access.
type GameService struct {
	contexts    ContextStorage
	players     *PlayerService
	progression *Progression
	quiz        *QuizService
	store       *StoreService
	challenges  *ChallengeService
	content     ContentClient
	rewards     entities.QuizRewards
	opts        GameOptions
	logger      *zap.Logger
	now         func() time.Time
}

// NewGameService creates a new GameService.
func NewGameService(
	contexts ContextStorage,
	players *PlayerService,
	progression *Progression,
	quiz *QuizService,
	store *StoreService,
	challenges *ChallengeService,
	content ContentClient,
	rules entities.GameRules,
	opts GameOptions,
	logger *zap.Logger,
) *GameService {
	return &GameService{
		contexts:    contexts,
		players:     players,
		progression: progression,
		quiz:        quiz,
		store:       store,
		challenges:  challenges,
		content:     content,
		rewards:     Rewards(rules),
		opts:        opts,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *GameService) context(chatID int64) *entities.GameContext {
	if gc, ok := s.contexts.Get(chatID); ok {
		return gc
	}

	gc := &entities.GameContext{
		ChatID:         chatID,
		Narrator:       s.opts.DefaultNarrator,
		QuestionsCount: s.opts.DefaultQuestions,
	}
	s.contexts.Store(gc)
	return gc
}

func (s *GameService) loggedIn(chatID int64) (*entities.GameContext, error) {
	gc := s.context(chatID)
	if !gc.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	return gc, nil
}

// BeginLogin marks the chat as waiting for a player name.
func (s *GameService) BeginLogin(chatID int64) {
	s.context(chatID).AwaitingName = true
}

// AwaitingName reports whether the next text message of the chat is a login name.
func (s *GameService) AwaitingName(chatID int64) bool {
	gc, ok := s.contexts.Get(chatID)
	return ok && (gc.AwaitingName || !gc.LoggedIn())
}

// LoggedIn reports whether a player is attached to the chat.
func (s *GameService) LoggedIn(chatID int64) bool {
	gc, ok := s.contexts.Get(chatID)
	return ok && gc.LoggedIn()
}

// Login attaches the named player to the chat. The bool reports a new player.
func (s *GameService) Login(ctx context.Context, chatID int64, name string) (*Profile, bool, error) {
	player, created, err := s.players.Login(ctx, name)
	if err != nil {
		return nil, false, err
	}

	gc := s.context(chatID)
	gc.Player = player
	gc.Quiz = nil
	gc.AwaitingName = false

	s.logger.Info("player logged in",
		zap.Int64("chat_id", chatID),
		zap.String("player", player.Name),
		zap.Bool("new", created),
	)

	return s.profile(gc), created, nil
}

// Logout detaches the player and drops the chat state.
func (s *GameService) Logout(chatID int64) {
	s.contexts.Delete(chatID)
}

// Profile returns the summary of the logged-in player.
func (s *GameService) Profile(chatID int64) (*Profile, error) {
	gc, err := s.loggedIn(chatID)
	if err != nil {
		return nil, err
	}
	return s.profile(gc), nil
}

func (s *GameService) profile(gc *entities.GameContext) *Profile {
	p := *gc.Player
	p.OwnedItems = slices.Clone(gc.Player.OwnedItems)

	pages := s.store.AccessiblePages(gc.Player)
	prof := &Profile{
		Player: p,
		Level:  s.progression.LevelInfo(p.XP),
		Pages:  pages,
		Ranges: ConsecutiveRanges(pages),
		Settings: Settings{
			Narrator:       gc.Narrator,
			QuestionsCount: gc.QuestionsCount,
		},
	}
	if theme, ok := s.store.ActiveTheme(gc.Player); ok {
		prof.Theme = theme.Name
	}

	return prof
}

// StartQuiz starts a quiz over a page or page range the player has access to.
// Any running quiz of the chat is replaced.
func (s *GameService) StartQuiz(ctx context.Context, chatID int64, scope entities.Scope) (*QuizStep, error) {
	gc, err := s.loggedIn(chatID)
	if err != nil {
		return nil, err
	}
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	var start, end int
	switch scope.Type {
	case entities.ScopePage:
		start, _ = scope.Number()
		end = start
	case entities.ScopePageRange:
		start, end, _ = scope.PageRange()
	default:
		return nil, fmt.Errorf("%w: %s is not selectable", entities.ErrInvalidScope, scope.Type)
	}

	if !s.store.OwnsRange(gc.Player, start, end) {
		return nil, ErrRangeNotOwned
	}

	return s.start(ctx, gc, scope, gc.QuestionsCount, "")
}

// StartCustomRange starts a quiz over pages start..end.
func (s *GameService) StartCustomRange(ctx context.Context, chatID int64, start, end int) (*QuizStep, error) {
	if start <= 0 || end <= 0 || start > end {
		return nil, fmt.Errorf("%w: pages %d-%d", entities.ErrInvalidScope, start, end)
	}
	return s.StartQuiz(ctx, chatID, entities.PageRangeScope(start, end))
}

// StartChallenge starts the quiz of an available challenge.
func (s *GameService) StartChallenge(ctx context.Context, chatID int64, challengeID string) (*QuizStep, error) {
	gc, err := s.loggedIn(chatID)
	if err != nil {
		return nil, err
	}

	ch, err := s.challenges.Get(challengeID)
	if err != nil {
		return nil, err
	}

	count := ch.QuestionsCount
	if count <= 0 {
		count = gc.QuestionsCount
	}

	return s.start(ctx, gc, ch.Scope(), count, ch.Title)
}

// Challenges lists the challenges available now.
func (s *GameService) Challenges() []entities.Challenge {
	return s.challenges.Available(s.now())
}

func (s *GameService) start(
	ctx context.Context, gc *entities.GameContext, scope entities.Scope, count int, title string,
) (*QuizStep, error) {
	ayahs, err := s.content.FetchAyahs(ctx, scope)
	if err != nil {
		if errors.Is(err, entities.ErrInvalidScope) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrContentFetch, err)
	}
	if len(ayahs) == 0 {
		return nil, fmt.Errorf("%w: no ayahs for %s", ErrContentFetch, scope)
	}

	session, err := s.quiz.Start(ayahs, count, gc.Narrator, s.rewards)
	if err != nil {
		return nil, err
	}

	if gc.Quiz != nil && gc.Quiz.State == entities.QuizInProgress {
		s.logger.Info("replacing unfinished quiz",
			zap.Int64("chat_id", gc.ChatID),
			zap.Int("question", gc.Quiz.CurrentIndex),
			zap.Int("total", gc.Quiz.TotalQuestions),
		)
	}
	gc.Quiz = session

	s.logger.Info("quiz started",
		zap.Int64("chat_id", gc.ChatID),
		zap.String("scope", scope.String()),
		zap.Int("ayahs", len(ayahs)),
		zap.Int("questions", count),
	)

	step := stepOf(session)
	step.Title = title
	return step, nil
}

func stepOf(session *entities.QuizSession) *QuizStep {
	return &QuizStep{
		Question: session.Current,
		Number:   session.CurrentIndex,
		Total:    session.TotalQuestions,
		Score:    session.Score,
	}
}

// Current returns the question waiting for an answer.
func (s *GameService) Current(chatID int64) (*QuizStep, error) {
	gc, err := s.loggedIn(chatID)
	if err != nil {
		return nil, err
	}
	if gc.Quiz == nil || gc.Quiz.State != entities.QuizInProgress || gc.Quiz.Current == nil {
		return nil, ErrNoActiveQuiz
	}
	return stepOf(gc.Quiz), nil
}

// Answer submits a choice for question number of the running quiz.
func (s *GameService) Answer(chatID int64, number, choice int) (*AnswerOutcome, error) {
	gc, err := s.loggedIn(chatID)
	if err != nil {
		return nil, err
	}

	session := gc.Quiz
	if session == nil || session.State != entities.QuizInProgress {
		return nil, ErrNoActiveQuiz
	}
	if number != session.CurrentIndex {
		return nil, ErrStaleQuestion
	}

	res, err := s.quiz.Submit(session, choice)
	if err != nil {
		return nil, err
	}

	return &AnswerOutcome{
		Result:   res,
		Question: session.Current,
		Number:   session.CurrentIndex,
		Total:    session.TotalQuestions,
		Score:    session.Score,
		Last:     !session.HasNext(),
	}, nil
}

// Advance moves past the answered question number: it asks the next question
// or finishes the quiz, pays out and saves the player.
func (s *GameService) Advance(ctx context.Context, chatID int64, number int) (*Advance, error) {
	gc, err := s.loggedIn(chatID)
	if err != nil {
		return nil, err
	}

	session := gc.Quiz
	if session == nil || session.State != entities.QuizInProgress {
		return nil, ErrNoActiveQuiz
	}
	if number != session.CurrentIndex || session.Current == nil || !session.Current.Answered() {
		return nil, ErrStaleQuestion
	}

	if session.HasNext() {
		if _, err := s.quiz.Next(session); err != nil {
			return nil, err
		}
		return &Advance{Next: stepOf(session)}, nil
	}

	return &Advance{Result: s.finish(ctx, gc)}, nil
}

func (s *GameService) finish(ctx context.Context, gc *entities.GameContext) *QuizResult {
	outcome := s.quiz.Finish(gc.Quiz)
	player := gc.Player

	player.AddDiamonds(outcome.BonusDiamonds)
	lu := s.progression.ApplyXP(player, outcome.EarnedXP)

	res := &QuizResult{
		Score:         outcome.Score,
		Total:         outcome.Total,
		EarnedXP:      outcome.EarnedXP,
		BonusDiamonds: outcome.BonusDiamonds,
		Perfect:       outcome.Perfect,
		LevelUp:       lu,
		Level:         s.progression.LevelInfo(player.XP),
		Diamonds:      player.Diamonds,
		Saved:         true,
	}

	if err := s.players.Save(ctx, player); err != nil {
		s.logger.Error("failed to save player after quiz",
			zap.Int64("chat_id", gc.ChatID),
			zap.String("player", player.Name),
			zap.Error(err),
		)
		res.Saved = false
	}

	s.logger.Info("quiz finished",
		zap.Int64("chat_id", gc.ChatID),
		zap.Int("score", outcome.Score),
		zap.Int("total", outcome.Total),
		zap.Bool("level_up", lu != nil),
		zap.Duration("duration", gc.Quiz.Elapsed(s.now())),
	)

	gc.Quiz = nil
	return res
}

// Store lists the catalog with ownership flags and the player's balance.
func (s *GameService) Store(chatID int64) ([]StoreEntry, int, error) {
	gc, err := s.loggedIn(chatID)
	if err != nil {
		return nil, 0, err
	}

	items := s.store.Items()
	entries := make([]StoreEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, StoreEntry{Item: it, Owned: gc.Player.Owns(it.ID)})
	}

	return entries, gc.Player.Diamonds, nil
}

// Purchase buys a store item for the logged-in player.
func (s *GameService) Purchase(ctx context.Context, chatID int64, itemID string) (*PurchaseResult, error) {
	gc, err := s.loggedIn(chatID)
	if err != nil {
		return nil, err
	}

	res, err := s.store.Purchase(ctx, gc.Player, itemID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("item purchased",
		zap.Int64("chat_id", chatID),
		zap.String("player", gc.Player.Name),
		zap.String("item", itemID),
		zap.Bool("saved", res.Saved),
	)
	return res, nil
}

// Settings returns the chat's current selection.
func (s *GameService) Settings(chatID int64) Settings {
	gc := s.context(chatID)
	return Settings{Narrator: gc.Narrator, QuestionsCount: gc.QuestionsCount}
}

// Options returns the selectable settings.
func (s *GameService) Options() GameOptions {
	return s.opts
}

// SetNarrator selects the recitation used by the next quiz.
func (s *GameService) SetNarrator(chatID int64, narrator string) error {
	if !slices.Contains(s.opts.Narrators, narrator) {
		return fmt.Errorf("%w: %s", ErrUnknownNarrator, narrator)
	}
	s.context(chatID).Narrator = narrator
	return nil
}

// SetQuestionsCount selects the length of the next quiz.
func (s *GameService) SetQuestionsCount(chatID int64, n int) error {
	if !slices.Contains(s.opts.QuestionCounts, n) {
		return fmt.Errorf("%w: %d", ErrInvalidQuestionsCount, n)
	}
	s.context(chatID).QuestionsCount = n
	return nil
}

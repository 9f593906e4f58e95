package service

import (
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/hifz-quiz-bot/internal/domain/entities"
)

// QuizService runs quiz sessions over fetched verse sets.
type QuizService struct {
	generators []NamedGenerator
	audio      AudioLinker
	rng        Rand
	logger     *zap.Logger
	now        func() time.Time
}

// NewQuizService creates a quiz service drawing questions from generators.
func NewQuizService(generators []NamedGenerator, audio AudioLinker, rng Rand, logger *zap.Logger) *QuizService {
	return &QuizService{
		generators: generators,
		audio:      audio,
		rng:        rng,
		logger:     logger,
		now:        time.Now,
	}
}

// Start creates a session over ayahs and asks its first question.
func (s *QuizService) Start(
	ayahs []entities.Ayah, total int, narrator string, rewards entities.QuizRewards,
) (*entities.QuizSession, error) {
	if len(s.generators) == 0 {
		return nil, ErrNoActiveGenerators
	}
	if total <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQuestionsCount, total)
	}
	if len(ayahs) == 0 {
		return nil, ErrNotEnoughAyahs
	}

	session := entities.NewQuizSession(ayahs, total, narrator, rewards)
	session.Start(s.now())

	if _, err := s.Next(session); err != nil {
		return nil, err
	}

	return session, nil
}

// Next generates the following question and makes it current.
func (s *QuizService) Next(session *entities.QuizSession) (*entities.Question, error) {
	if !session.HasNext() {
		return nil, ErrNoActiveQuiz
	}

	q, err := s.generate(session.Ayahs)
	if err != nil {
		return nil, err
	}
	if s.audio != nil {
		q.AudioURL = s.audio.AudioURL(session.Narrator, q.AyahNumber)
	}

	session.Ask(q)
	return q, nil
}

// generate picks a random generator; when it cannot build a question another
// untried one is picked. Failed attempts do not count as asked questions.
func (s *QuizService) generate(ayahs []entities.Ayah) (*entities.Question, error) {
	candidates := slices.Clone(s.generators)

	for len(candidates) > 0 {
		i := s.rng.Intn(len(candidates))
		g := candidates[i]

		if q := g.Generate(s.rng, ayahs); q != nil {
			return q, nil
		}

		s.logger.Debug("generator could not build a question",
			zap.String("kind", string(g.Kind)),
			zap.Int("ayahs", len(ayahs)),
		)
		candidates = slices.Delete(candidates, i, i+1)
	}

	return nil, ErrNotEnoughAyahs
}

// Submit answers the current question of session.
func (s *QuizService) Submit(session *entities.QuizSession, choice int) (entities.AnswerResult, error) {
	return session.Submit(choice)
}

// Finish closes session and returns its outcome.
func (s *QuizService) Finish(session *entities.QuizSession) entities.QuizOutcome {
	return session.Finish()
}

// Rewards reads the quiz payouts from the game rules.
func Rewards(rules entities.GameRules) entities.QuizRewards {
	return entities.QuizRewards{
		XPPerCorrect:    rules.Int(entities.RuleXPPerCorrectAnswer),
		PerfectXP:       rules.Int(entities.RuleXPBonusAllCorrect),
		PerfectDiamonds: rules.Int(entities.RuleDiamondsBonusAllCorrect),
	}
}

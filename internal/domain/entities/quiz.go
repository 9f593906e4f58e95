package entities

import (
	"errors"
	"time"
)

var ErrNoPendingQuestion = errors.New("no question waiting for an answer")

// QuizState is the lifecycle stage of a quiz session.
type QuizState string

const (
	QuizNotStarted QuizState = "not_started"
	QuizInProgress QuizState = "in_progress"
	QuizFinished   QuizState = "finished"
)

// QuizRewards holds the rule-driven amounts a session pays out.
type QuizRewards struct {
	XPPerCorrect    int
	PerfectXP       int
	PerfectDiamonds int
}

// QuizSession tracks one fixed-length run of questions over a verse set.
// Invariant: Score <= CurrentIndex <= TotalQuestions.
type QuizSession struct {
	Ayahs          []Ayah
	CurrentIndex   int // number of questions asked so far
	TotalQuestions int
	Score          int
	EarnedXP       int
	Narrator       string
	State          QuizState
	Current        *Question
	Rewards        QuizRewards
	StartedAt      time.Time

	outcome *QuizOutcome
}

// QuizOutcome summarises a finished session.
type QuizOutcome struct {
	Score         int
	Total         int
	EarnedXP      int // per-question XP plus the perfect-score bonus
	BonusDiamonds int
	Perfect       bool
}

// NewQuizSession creates a session that has not started yet.
func NewQuizSession(ayahs []Ayah, totalQuestions int, narrator string, rewards QuizRewards) *QuizSession {
	return &QuizSession{
		Ayahs:          ayahs,
		TotalQuestions: totalQuestions,
		Narrator:       narrator,
		Rewards:        rewards,
		State:          QuizNotStarted,
	}
}

// Start resets the counters and moves the session to InProgress.
func (s *QuizSession) Start(now time.Time) {
	s.CurrentIndex = 0
	s.Score = 0
	s.EarnedXP = 0
	s.Current = nil
	s.outcome = nil
	s.State = QuizInProgress
	s.StartedAt = now
}

// Elapsed returns the time since the session started, or 0 before Start.
func (s *QuizSession) Elapsed(now time.Time) time.Duration {
	if s.StartedAt.IsZero() {
		return 0
	}
	return now.Sub(s.StartedAt)
}

// HasNext reports whether another question should be asked.
func (s *QuizSession) HasNext() bool {
	return s.State == QuizInProgress && s.CurrentIndex < s.TotalQuestions
}

// Ask makes q the current question and counts it as asked.
func (s *QuizSession) Ask(q *Question) {
	s.CurrentIndex++
	s.Current = q
}

// Submit answers the current question and updates score and earned XP.
func (s *QuizSession) Submit(choice int) (AnswerResult, error) {
	if s.State != QuizInProgress || s.Current == nil {
		return AnswerResult{}, ErrNoPendingQuestion
	}

	res, err := s.Current.Answer(choice)
	if err != nil {
		return AnswerResult{}, err
	}

	if res.Correct {
		s.Score++
		s.EarnedXP += s.Rewards.XPPerCorrect
	}

	return res, nil
}

// Complete reports whether every question has been asked and answered.
func (s *QuizSession) Complete() bool {
	return s.CurrentIndex >= s.TotalQuestions && (s.Current == nil || s.Current.Answered())
}

// Finish closes the session and computes its outcome. A perfect score adds the
// bonus XP and diamonds once; calling Finish again returns the same outcome.
func (s *QuizSession) Finish() QuizOutcome {
	if s.outcome != nil {
		return *s.outcome
	}

	s.State = QuizFinished
	out := QuizOutcome{
		Score: s.Score,
		Total: s.TotalQuestions,
	}

	if s.TotalQuestions > 0 && s.Score == s.TotalQuestions {
		out.Perfect = true
		s.EarnedXP += s.Rewards.PerfectXP
		out.BonusDiamonds = s.Rewards.PerfectDiamonds
	}
	out.EarnedXP = s.EarnedXP

	s.outcome = &out
	return out
}

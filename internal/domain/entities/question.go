package entities

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyAnswered = errors.New("question already answered")
	ErrInvalidChoice   = errors.New("invalid choice")
)

// QuestionKind is the stable identifier of a question generator.
type QuestionKind string

const (
	QuestionChooseNext       QuestionKind = "choose_next"
	QuestionLocateAyah       QuestionKind = "locate_ayah"
	QuestionCompleteLastWord QuestionKind = "complete_last_word"
)

// Option is one answer choice. Key identifies what the option stands for
// (a verse number, a location, a word) and is what correctness is checked against.
type Option struct {
	Key   string
	Label string
}

// Question is a single multiple-choice question built from a verse set.
// It accepts exactly one answer.
type Question struct {
	Kind          QuestionKind
	Prompt        string   // instruction shown to the learner
	Text          string   // verse text shown with the prompt, may be empty
	AyahNumber    int      // global number of the verse the question is about
	AudioURL      string   // recitation of that verse
	Options       []Option // shuffled choices
	CorrectKey    string
	CorrectAnswer string // human readable correct answer shown after a wrong choice

	answered bool
}

// AnswerResult is what the learner gets back after choosing an option.
type AnswerResult struct {
	Choice        int
	Correct       bool
	CorrectAnswer string
}

// Answer registers the learner's choice. The first call decides the result;
// any later call fails with ErrAlreadyAnswered.
func (q *Question) Answer(choice int) (AnswerResult, error) {
	if q.answered {
		return AnswerResult{}, ErrAlreadyAnswered
	}
	if choice < 0 || choice >= len(q.Options) {
		return AnswerResult{}, fmt.Errorf("%w: %d of %d", ErrInvalidChoice, choice, len(q.Options))
	}

	q.answered = true
	return AnswerResult{
		Choice:        choice,
		Correct:       q.Options[choice].Key == q.CorrectKey,
		CorrectAnswer: q.CorrectAnswer,
	}, nil
}

// Answered reports whether the question no longer accepts answers.
func (q *Question) Answered() bool {
	return q.answered
}

// CorrectIndex returns the position of the first option matching the correct key, or -1.
func (q *Question) CorrectIndex() int {
	for i, opt := range q.Options {
		if opt.Key == q.CorrectKey {
			return i
		}
	}
	return -1
}

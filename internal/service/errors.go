package service

import "errors"

var (
	ErrConfigLoad            = errors.New("game configuration could not be loaded")
	ErrPlayerLookup          = errors.New("player lookup failed")
	ErrContentFetch          = errors.New("quiz content could not be fetched")
	ErrSave                  = errors.New("player could not be saved")
	ErrInsufficientFunds     = errors.New("not enough diamonds")
	ErrAlreadyOwned          = errors.New("item already owned")
	ErrItemNotFound          = errors.New("store item not found")
	ErrChallengeNotFound     = errors.New("challenge not available")
	ErrRangeNotOwned         = errors.New("page range not owned")
	ErrEmptyName             = errors.New("player name is empty")
	ErrNotLoggedIn           = errors.New("player is not logged in")
	ErrNoActiveQuiz          = errors.New("no quiz in progress")
	ErrStaleQuestion         = errors.New("question is no longer current")
	ErrNoActiveGenerators    = errors.New("no question generators enabled")
	ErrNotEnoughAyahs        = errors.New("not enough ayahs to build a question")
	ErrInvalidQuestionsCount = errors.New("invalid number of questions")
	ErrUnknownNarrator       = errors.New("unknown narrator")
)

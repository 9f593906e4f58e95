package entities

import "time"

// Challenge is a time-windowed quiz over a fixed scope.
type Challenge struct {
	ID             string
	Title          string
	Description    string
	ScopeType      ScopeType
	ScopeValue     string
	QuestionsCount int
	StartTime      time.Time
	EndTime        time.Time
}

// ActiveAt reports whether now falls inside the challenge window (inclusive).
func (c Challenge) ActiveAt(now time.Time) bool {
	return !now.Before(c.StartTime) && !now.After(c.EndTime)
}

// Scope returns the scope the challenge quiz runs on.
func (c Challenge) Scope() Scope {
	return Scope{Type: c.ScopeType, Value: c.ScopeValue}
}

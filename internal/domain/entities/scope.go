package entities

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidScope = errors.New("invalid scope")

// ScopeType selects how verses are retrieved from the content API.
type ScopeType string

const (
	ScopeJuz       ScopeType = "JUZ"
	ScopeSurah     ScopeType = "SURAH"
	ScopePage      ScopeType = "PAGE"
	ScopePageRange ScopeType = "PAGE_RANGE"
)

// Scope describes which verses a quiz runs on.
type Scope struct {
	Type  ScopeType
	Value string // number for JUZ/SURAH/PAGE, "start-end" for PAGE_RANGE
}

// PageScope returns a scope over a single page.
func PageScope(page int) Scope {
	return Scope{Type: ScopePage, Value: strconv.Itoa(page)}
}

// PageRangeScope returns a scope over an inclusive page range.
func PageRangeScope(start, end int) Scope {
	return Scope{Type: ScopePageRange, Value: fmt.Sprintf("%d-%d", start, end)}
}

// Number returns the numeric value of a JUZ, SURAH or PAGE scope.
func (s Scope) Number() (int, error) {
	switch s.Type {
	case ScopeJuz, ScopeSurah, ScopePage:
	default:
		return 0, fmt.Errorf("%w: %s has no single number", ErrInvalidScope, s.Type)
	}

	n, err := strconv.Atoi(strings.TrimSpace(s.Value))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %s %q", ErrInvalidScope, s.Type, s.Value)
	}
	return n, nil
}

// PageRange parses a PAGE_RANGE value into its inclusive bounds.
func (s Scope) PageRange() (int, int, error) {
	if s.Type != ScopePageRange {
		return 0, 0, fmt.Errorf("%w: %s is not a page range", ErrInvalidScope, s.Type)
	}

	startStr, endStr, ok := strings.Cut(s.Value, "-")
	if !ok {
		return 0, 0, fmt.Errorf("%w: range %q", ErrInvalidScope, s.Value)
	}

	start, err1 := strconv.Atoi(strings.TrimSpace(startStr))
	end, err2 := strconv.Atoi(strings.TrimSpace(endStr))
	if err1 != nil || err2 != nil || start <= 0 || end <= 0 || start > end {
		return 0, 0, fmt.Errorf("%w: range %q", ErrInvalidScope, s.Value)
	}

	return start, end, nil
}

// Validate checks that the scope can be sent to the content API.
func (s Scope) Validate() error {
	if s.Type == ScopePageRange {
		_, _, err := s.PageRange()
		return err
	}
	_, err := s.Number()
	return err
}

func (s Scope) String() string {
	return string(s.Type) + ":" + s.Value
}

package service

import (
	"slices"
	"strconv"
	"strings"

	"github.com/aliskhannn/hifz-quiz-bot/internal/domain/entities"
)

// Generator builds one question from a verse set, or returns nil when the set
// cannot support its question kind.
type Generator func(r Rand, ayahs []entities.Ayah) *entities.Question

// NamedGenerator pairs a generator with its stable identifier.
type NamedGenerator struct {
	Kind     entities.QuestionKind
	Generate Generator
}

// minAyahsForChoice is the smallest verse set multi-choice generators accept.
const minAyahsForChoice = 4

const (
	locationBeginning = "beginning"
	locationMiddle    = "middle"
	locationEnd       = "end"
)

var locationLabels = map[string]string{
	locationBeginning: "بداية الصفحة",
	locationMiddle:    "وسط الصفحة",
	locationEnd:       "نهاية الصفحة",
}

// Generators lists every registered generator in display order.
var Generators = []NamedGenerator{
	{Kind: entities.QuestionChooseNext, Generate: ChooseNextAyah},
	{Kind: entities.QuestionLocateAyah, Generate: LocateAyah},
	{Kind: entities.QuestionCompleteLastWord, Generate: CompleteLastWord},
}

// ActiveGenerators returns the registered generators enabled by configs.
// With no configuration every registered generator is active.
func ActiveGenerators(configs []entities.QuestionConfig) []NamedGenerator {
	if len(configs) == 0 {
		out := make([]NamedGenerator, len(Generators))
		copy(out, Generators)
		return out
	}

	enabled := make(map[entities.QuestionKind]bool, len(configs))
	for _, c := range configs {
		if c.Enabled {
			enabled[entities.QuestionKind(c.ID)] = true
		}
	}

	var out []NamedGenerator
	for _, g := range Generators {
		if enabled[g.Kind] {
			out = append(out, g)
		}
	}
	return out
}

// ChooseNextAyah asks which verse follows a random verse of the set.
func ChooseNextAyah(r Rand, ayahs []entities.Ayah) *entities.Question {
	if len(ayahs) < minAyahsForChoice {
		return nil
	}

	start := r.Intn(len(ayahs) - 1)
	asked := ayahs[start]
	correct := ayahs[start+1]

	var pool []entities.Ayah
	for _, a := range ayahs {
		if a.Number != asked.Number && a.Number != correct.Number {
			pool = append(pool, a)
		}
	}
	if len(pool) < 2 {
		return nil
	}
	pool = shuffled(r, pool)

	choices := shuffled(r, []entities.Ayah{correct, pool[0], pool[1]})
	options := make([]entities.Option, 0, len(choices))
	for _, a := range choices {
		options = append(options, entities.Option{
			Key:   strconv.Itoa(a.Number),
			Label: a.Text,
		})
	}

	return &entities.Question{
		Kind:          entities.QuestionChooseNext,
		Prompt:        "استمع للآية، ثم اختر الآية التالية:",
		AyahNumber:    asked.Number,
		Options:       options,
		CorrectKey:    strconv.Itoa(correct.Number),
		CorrectAnswer: correct.Text,
	}
}

// LocateAyah asks in which third of the set a random verse sits.
func LocateAyah(r Rand, ayahs []entities.Ayah) *entities.Question {
	n := len(ayahs)
	if n == 0 {
		return nil
	}

	idx := r.Intn(n)
	asked := ayahs[idx]

	var location string
	switch {
	case 3*idx < n:
		location = locationBeginning
	case 3*idx < 2*n:
		location = locationMiddle
	default:
		location = locationEnd
	}

	options := make([]entities.Option, 0, 3)
	for _, key := range []string{locationBeginning, locationMiddle, locationEnd} {
		options = append(options, entities.Option{Key: key, Label: locationLabels[key]})
	}

	return &entities.Question{
		Kind:          entities.QuestionLocateAyah,
		Prompt:        "استمع للآية وحدد موقعها في الصفحة:",
		AyahNumber:    asked.Number,
		Options:       options,
		CorrectKey:    location,
		CorrectAnswer: locationLabels[location],
	}
}

// CompleteLastWord shows a verse without its last word and asks for the word.
func CompleteLastWord(r Rand, ayahs []entities.Ayah) *entities.Question {
	var suitable []entities.Ayah
	for _, a := range ayahs {
		if len(strings.Fields(a.Text)) > 3 {
			suitable = append(suitable, a)
		}
	}
	if len(suitable) < minAyahsForChoice {
		return nil
	}

	asked := suitable[r.Intn(len(suitable))]
	words := strings.Fields(asked.Text)
	correct := words[len(words)-1]
	incomplete := strings.Join(words[:len(words)-1], " ")

	var others []entities.Ayah
	for _, a := range suitable {
		if a.Number != asked.Number {
			others = append(others, a)
		}
	}

	// Distractors are distinct and never equal the answer.
	words = []string{correct}
	for _, a := range shuffled(r, others) {
		w := strings.Fields(a.Text)
		last := w[len(w)-1]
		if slices.Contains(words, last) {
			continue
		}
		words = append(words, last)
		if len(words) == minAyahsForChoice {
			break
		}
	}
	if len(words) < minAyahsForChoice {
		return nil
	}

	options := make([]entities.Option, 0, len(words))
	for _, w := range shuffled(r, words) {
		options = append(options, entities.Option{Key: w, Label: w})
	}

	return &entities.Question{
		Kind:          entities.QuestionCompleteLastWord,
		Prompt:        "اختر الكلمة الصحيحة لإكمال الآية التالية:",
		Text:          incomplete + " ...",
		AyahNumber:    asked.Number,
		Options:       options,
		CorrectKey:    correct,
		CorrectAnswer: correct,
	}
}

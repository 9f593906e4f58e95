package service

import (
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/aliskhannn/hifz-quiz-bot/internal/domain/entities"
)

func TestGenerators_SmallSets(t *testing.T) {
	shortWords := []entities.Ayah{
		{Number: 1, Text: "الم"},
		{Number: 2, Text: "ذلك الكتاب"},
		{Number: 3, Text: "هدى للمتقين"},
		{Number: 4, Text: "الذين يؤمنون"},
		{Number: 5, Text: "ويقيمون الصلاة"},
	}

	tests := []struct {
		name  string
		gen   Generator
		ayahs []entities.Ayah
	}{
		{"choose next, empty", ChooseNextAyah, nil},
		{"choose next, three ayahs", ChooseNextAyah, makeAyahs(3)},
		{"locate, empty", LocateAyah, nil},
		{"last word, three ayahs", CompleteLastWord, makeAyahs(3)},
		{"last word, short verses", CompleteLastWord, shortWords},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if q := tt.gen(&seqRand{}, tt.ayahs); q != nil {
				t.Errorf("got question %+v, want nil", q)
			}
		})
	}
}

func TestChooseNextAyah(t *testing.T) {
	ayahs := makeAyahs(6)

	q := ChooseNextAyah(&seqRand{ints: []int{2}}, ayahs)
	if q == nil {
		t.Fatal("ChooseNextAyah() = nil")
	}

	if q.AyahNumber != 102 {
		t.Errorf("AyahNumber = %d, want 102", q.AyahNumber)
	}
	if q.CorrectKey != "103" || q.CorrectAnswer != ayahs[3].Text {
		t.Errorf("correct = %q/%q, want verse 103", q.CorrectKey, q.CorrectAnswer)
	}
	if len(q.Options) != 3 {
		t.Fatalf("len(Options) = %d, want 3", len(q.Options))
	}

	idx := q.CorrectIndex()
	if idx < 0 {
		t.Fatal("correct option missing")
	}
	res, err := q.Answer(idx)
	if err != nil || !res.Correct {
		t.Errorf("Answer(correct) = %+v, %v", res, err)
	}
}

func TestChooseNextAyah_Randomised(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	ayahs := makeAyahs(8)

	for i := 0; i < 200; i++ {
		q := ChooseNextAyah(r, ayahs)
		if q == nil {
			t.Fatal("ChooseNextAyah() = nil")
		}

		seen := map[string]bool{}
		for _, opt := range q.Options {
			if seen[opt.Key] {
				t.Fatalf("duplicate option %q", opt.Key)
			}
			seen[opt.Key] = true
			if opt.Key == strconv.Itoa(q.AyahNumber) {
				t.Fatalf("asked verse %d offered as an option", q.AyahNumber)
			}
		}
		if want := strconv.Itoa(q.AyahNumber + 1); q.CorrectKey != want {
			t.Fatalf("CorrectKey = %q, want %q", q.CorrectKey, want)
		}
		if q.CorrectIndex() < 0 {
			t.Fatal("correct option missing")
		}
	}
}

func TestLocateAyah_Thirds(t *testing.T) {
	tests := []struct {
		n    int
		idx  int
		want string
	}{
		{9, 0, locationBeginning},
		{9, 2, locationBeginning},
		{9, 3, locationMiddle},
		{9, 5, locationMiddle},
		{9, 6, locationEnd},
		{9, 8, locationEnd},
		{10, 3, locationBeginning},
		{10, 4, locationMiddle},
		{10, 6, locationMiddle},
		{10, 7, locationEnd},
		{1, 0, locationBeginning},
	}

	for _, tt := range tests {
		q := LocateAyah(&seqRand{ints: []int{tt.idx}}, makeAyahs(tt.n))
		if q == nil {
			t.Fatalf("LocateAyah(n=%d) = nil", tt.n)
		}
		if q.CorrectKey != tt.want {
			t.Errorf("n=%d idx=%d: CorrectKey = %q, want %q", tt.n, tt.idx, q.CorrectKey, tt.want)
		}
		if q.AyahNumber != 100+tt.idx {
			t.Errorf("n=%d idx=%d: AyahNumber = %d", tt.n, tt.idx, q.AyahNumber)
		}
		if len(q.Options) != 3 || q.Options[0].Key != locationBeginning || q.Options[2].Key != locationEnd {
			t.Errorf("options = %+v, want fixed beginning/middle/end order", q.Options)
		}
	}
}

func TestCompleteLastWord(t *testing.T) {
	ayahs := makeAyahs(5)

	q := CompleteLastWord(&seqRand{ints: []int{1}}, ayahs)
	if q == nil {
		t.Fatal("CompleteLastWord() = nil")
	}

	if q.CorrectKey != "خاتمة1" || q.CorrectAnswer != "خاتمة1" {
		t.Errorf("correct = %q/%q, want خاتمة1", q.CorrectKey, q.CorrectAnswer)
	}
	if strings.Contains(q.Text, "خاتمة1") || !strings.HasSuffix(q.Text, " ...") {
		t.Errorf("Text = %q, want verse without its last word", q.Text)
	}
	if len(q.Options) != 4 {
		t.Errorf("len(Options) = %d, want 4", len(q.Options))
	}
	if q.CorrectIndex() < 0 {
		t.Error("correct option missing")
	}
}

func TestCompleteLastWord_DistinctWords(t *testing.T) {
	withEnding := func(ayahs []entities.Ayah, idx []int, word string) []entities.Ayah {
		for _, i := range idx {
			ayahs[i].Text = "بداية كلمة ثانية " + word
		}
		return ayahs
	}

	tests := []struct {
		name    string
		ayahs   []entities.Ayah
		wantNil bool
	}{
		{"repeated endings skipped", withEnding(makeAyahs(7), []int{0, 2, 4}, "العليم"), false},
		{"too few distinct endings", withEnding(makeAyahs(5), []int{0, 2, 3, 4}, "العليم"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := CompleteLastWord(&seqRand{}, tt.ayahs)
			if tt.wantNil {
				if q != nil {
					t.Errorf("CompleteLastWord() = %+v, want nil", q)
				}
				return
			}
			if q == nil {
				t.Fatal("CompleteLastWord() = nil")
			}
			if len(q.Options) != 4 {
				t.Fatalf("len(Options) = %d, want 4", len(q.Options))
			}

			seen := make(map[string]bool)
			correct := 0
			for _, o := range q.Options {
				if seen[o.Key] {
					t.Errorf("duplicate option %q", o.Key)
				}
				seen[o.Key] = true
				if o.Key == q.CorrectKey {
					correct++
				}
			}
			if correct != 1 {
				t.Errorf("%d options keyed as correct, want 1", correct)
			}
		})
	}
}

func TestActiveGenerators(t *testing.T) {
	tests := []struct {
		name    string
		configs []entities.QuestionConfig
		want    []entities.QuestionKind
	}{
		{
			name: "no configuration",
			want: []entities.QuestionKind{
				entities.QuestionChooseNext, entities.QuestionLocateAyah, entities.QuestionCompleteLastWord,
			},
		},
		{
			name: "subset in registry order",
			configs: []entities.QuestionConfig{
				{ID: "complete_last_word", Enabled: true},
				{ID: "choose_next", Enabled: false},
				{ID: "locate_ayah", Enabled: true},
				{ID: "unknown_kind", Enabled: true},
			},
			want: []entities.QuestionKind{entities.QuestionLocateAyah, entities.QuestionCompleteLastWord},
		},
		{
			name:    "all disabled",
			configs: []entities.QuestionConfig{{ID: "choose_next", Enabled: false}},
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ActiveGenerators(tt.configs)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i, g := range got {
				if g.Kind != tt.want[i] {
					t.Errorf("[%d] = %s, want %s", i, g.Kind, tt.want[i])
				}
			}
		})
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aliskhannn/hifz-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/hifz-quiz-bot/internal/infra/postgres/repository"
)

// seqRand returns scripted values for Intn (modulo n) and never reorders on Shuffle.
type seqRand struct {
	ints []int
	i    int
}

func (r *seqRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[r.i%len(r.ints)]
	r.i++
	return v % n
}

func (r *seqRand) Shuffle(int, func(i, j int)) {}

// makeAyahs builds n verses of five words whose last word is unique.
func makeAyahs(n int) []entities.Ayah {
	ayahs := make([]entities.Ayah, n)
	for i := range ayahs {
		ayahs[i] = entities.Ayah{
			Number:        100 + i,
			Text:          fmt.Sprintf("بداية%d كلمة ثانية ثالثة خاتمة%d", i, i),
			NumberInSurah: i + 1,
			Page:          1,
		}
	}
	return ayahs
}

type fakePlayerRepo struct {
	mu      sync.Mutex
	players map[string]entities.Player
	getErr  error
	saveErr error
	saves   int
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{players: make(map[string]entities.Player)}
}

func (r *fakePlayerRepo) GetByName(_ context.Context, name string) (*entities.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.getErr != nil {
		return nil, r.getErr
	}
	p, ok := r.players[name]
	if !ok {
		return nil, repository.ErrPlayerNotFound
	}
	p.OwnedItems = append([]string{}, p.OwnedItems...)
	return &p, nil
}

func (r *fakePlayerRepo) Upsert(_ context.Context, p *entities.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.saveErr != nil {
		return r.saveErr
	}
	stored := *p
	stored.OwnedItems = append([]string{}, p.OwnedItems...)
	r.players[p.Name] = stored
	r.saves++
	return nil
}

type fakeConfigRepo struct {
	cfg entities.GameConfig
	err error // returned by StoreItems and Challenges
}

func (r *fakeConfigRepo) GameRules(context.Context) (entities.GameRules, error) {
	return r.cfg.Rules, nil
}

func (r *fakeConfigRepo) QuestionConfigs(context.Context) ([]entities.QuestionConfig, error) {
	return r.cfg.Questions, nil
}

func (r *fakeConfigRepo) LevelTiers(context.Context) ([]entities.LevelTier, error) {
	return r.cfg.Tiers, nil
}

func (r *fakeConfigRepo) StoreItems(context.Context) ([]entities.StoreItem, error) {
	return r.cfg.StoreItems, r.err
}

func (r *fakeConfigRepo) Challenges(context.Context) ([]entities.Challenge, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.cfg.Challenges, nil
}

type fakeContent struct {
	ayahs  []entities.Ayah
	err    error
	scopes []entities.Scope
}

func (c *fakeContent) FetchAyahs(_ context.Context, scope entities.Scope) ([]entities.Ayah, error) {
	c.scopes = append(c.scopes, scope)
	if c.err != nil {
		return nil, c.err
	}
	return c.ayahs, nil
}

func (c *fakeContent) AudioURL(narrator string, n int) string {
	return fmt.Sprintf("https://audio.test/%s/%d.mp3", narrator, n)
}

var errBoom = errors.New("boom")

package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"telegram-weather-bot/internal/domain"
	"telegram-weather-bot/internal/domain/model"
	"telegram-weather-bot/internal/domain/ports/repository"
)

// newTestLogger creates a silent zerolog.Logger for use in tests.
func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// memSubscriberRepo is a small in-memory implementation used by unit tests.
type memSubscriberRepo struct {
	mu      sync.RWMutex
	store   map[int64]*model.Subscriber
	listErr error // simulate list failures
	saveErr error // simulate write failures
}

func newMemSubscriberRepo() *memSubscriberRepo {
	return &memSubscriberRepo{store: make(map[int64]*model.Subscriber)}
}

func (m *memSubscriberRepo) Upsert(ctx context.Context, tx repository.Tx, s *model.Subscriber) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	if existing, ok := m.store[s.ChatID]; ok {
		cp.SubscribedAt = existing.SubscribedAt
	}
	m.store[s.ChatID] = &cp
	return nil
}

func (m *memSubscriberRepo) FindByChatID(ctx context.Context, tx repository.Tx, chatID int64) (*model.Subscriber, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.store[chatID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memSubscriberRepo) ListActive(ctx context.Context, tx repository.Tx) ([]*model.Subscriber, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Subscriber
	for _, s := range m.store {
		if s.Active {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memSubscriberRepo) CountActive(ctx context.Context, tx repository.Tx) (int, error) {
	subs, err := m.ListActive(ctx, tx)
	if err != nil {
		return 0, err
	}
	return len(subs), nil
}

func (m *memSubscriberRepo) SetActive(ctx context.Context, tx repository.Tx, chatID int64, active bool) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.store[chatID]
	if !ok {
		return domain.ErrNotFound
	}
	s.Active = active
	return nil
}

func (m *memSubscriberRepo) count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store)
}

// memSettingRepo provides in-memory settings for tests.
type memSettingRepo struct {
	mu     sync.RWMutex
	store  map[string]*model.Setting
	getErr error
}

func newMemSettingRepo() *memSettingRepo {
	return &memSettingRepo{store: make(map[string]*model.Setting)}
}

func (m *memSettingRepo) Get(ctx context.Context, tx repository.Tx, key string) (*model.Setting, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.store[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memSettingRepo) Set(ctx context.Context, tx repository.Tx, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[key] = &model.Setting{Key: key, Value: value, UpdatedAt: time.Now()}
	return nil
}

func (m *memSettingRepo) SetIfAbsent(ctx context.Context, tx repository.Tx, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[key]; ok {
		return nil
	}
	m.store[key] = &model.Setting{Key: key, Value: value, UpdatedAt: time.Now()}
	return nil
}

// mockWeatherProvider returns canned reports per city, or an error for cities
// listed in failFor.
type mockWeatherProvider struct {
	mu      sync.Mutex
	failFor map[string]error
	calls   []string
}

func newMockWeatherProvider() *mockWeatherProvider {
	return &mockWeatherProvider{failFor: make(map[string]error)}
}

func (m *mockWeatherProvider) Current(ctx context.Context, city, apiKey string) (*model.WeatherReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, city)
	if err, ok := m.failFor[city]; ok {
		return nil, err
	}
	return &model.WeatherReport{
		CityName:    city,
		Temperature: 18.456,
		Condition:   "clear sky",
		WindSpeed:   3.2,
		Humidity:    60,
	}, nil
}

// mockBot records outbound messages; sendErr makes every send fail.
type mockBot struct {
	mu      sync.Mutex
	sent    map[int64][]string
	sendErr error
}

func newMockBot() *mockBot {
	return &mockBot{sent: make(map[int64][]string)}
}

func (m *mockBot) SendMessage(ctx context.Context, chatID int64, text string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent[chatID] = append(m.sent[chatID], text)
	return nil
}

func (m *mockBot) messagesFor(chatID int64) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sent[chatID]...)
}

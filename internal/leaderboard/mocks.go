package leaderboard

import (
	"time"

	"github.com/stretchr/testify/mock"
)

type MockScoreRepository struct {
	mock.Mock
}

func (m *MockScoreRepository) SaveScore(score *Score) error {
	args := m.Called(score)
	return args.Error(0)
}

func (m *MockScoreRepository) TopScores(limit int) ([]Score, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Score), args.Error(1)
}

type MockUserResolver struct {
	mock.Mock
}

func (m *MockUserResolver) FindIDByUsername(username string) (*uint, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*uint), args.Error(1)
}

type MockScoreCache struct {
	mock.Mock
}

func (m *MockScoreCache) GetTop() ([]ScoreEntry, bool) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]ScoreEntry), args.Bool(1)
}

func (m *MockScoreCache) SetTop(entries []ScoreEntry) {
	m.Called(entries)
}

func (m *MockScoreCache) Invalidate() {
	m.Called()
}

type FixedClock struct {
	Time time.Time
}

func (c *FixedClock) Now() time.Time {
	return c.Time
}

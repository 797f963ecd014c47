package round

import (
	"context"

	"github.com/banana-math/BananaMathServer/internal/leaderboard"
	"github.com/banana-math/BananaMathServer/internal/puzzle"
	"github.com/stretchr/testify/mock"
)

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) FetchPuzzle(ctx context.Context) (*puzzle.Puzzle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*puzzle.Puzzle), args.Error(1)
}

type MockScoreSaver struct {
	mock.Mock
}

func (m *MockScoreSaver) SaveScore(req *leaderboard.ScoreRequest) error {
	args := m.Called(req)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) RoundStarted(playerID string, info *RoundInfo) {
	m.Called(playerID, info)
}

func (m *MockNotifier) RoundTick(playerID string, remaining int) {
	m.Called(playerID, remaining)
}

func (m *MockNotifier) RoundExpired(playerID string) {
	m.Called(playerID)
}

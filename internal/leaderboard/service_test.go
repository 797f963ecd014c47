package leaderboard

import (
	"errors"
	"testing"
	"time"

	"github.com/banana-math/BananaMathServer/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestScoreService() (*ScoreService, *MockScoreRepository, *MockUserResolver, *MockScoreCache) {
	mockRepo := &MockScoreRepository{}
	mockUsers := &MockUserResolver{}
	mockCache := &MockScoreCache{}
	clk := &FixedClock{Time: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	return NewScoreService(mockRepo, mockUsers, mockCache, clk), mockRepo, mockUsers, mockCache
}

func TestScoreService_SaveScore_LinksKnownUser(t *testing.T) {
	service, mockRepo, mockUsers, mockCache := newTestScoreService()

	id := uint(9)
	mockUsers.On("FindIDByUsername", "player_1").Return(&id, nil)
	mockRepo.On("SaveScore", mock.MatchedBy(func(s *Score) bool {
		return s.UserID != nil && *s.UserID == 9 &&
			s.Username == "player_1" && s.Score == 210 &&
			s.Level == "easy" && s.TimeTaken == 5
	})).Return(nil)
	mockCache.On("Invalidate").Return()

	err := service.SaveScore(&ScoreRequest{Username: "player_1", Score: 210, Level: "easy", TimeTaken: 5})
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestScoreService_SaveScore_KeepsOrphanRow(t *testing.T) {
	service, mockRepo, mockUsers, mockCache := newTestScoreService()

	mockUsers.On("FindIDByUsername", "stranger").Return(nil, nil)
	mockRepo.On("SaveScore", mock.MatchedBy(func(s *Score) bool {
		return s.UserID == nil && s.Username == "stranger"
	})).Return(nil)
	mockCache.On("Invalidate").Return()

	err := service.SaveScore(&ScoreRequest{Username: "stranger", Score: 440, Level: "extreme", TimeTaken: 15})
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestScoreService_SaveScore_MissingFields(t *testing.T) {
	service, mockRepo, _, _ := newTestScoreService()

	err := service.SaveScore(&ScoreRequest{Username: "", Score: 10, Level: "easy"})
	assert.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	mockRepo.AssertNotCalled(t, "SaveScore", mock.Anything)
}

func TestScoreService_SaveScore_StorageFailure(t *testing.T) {
	service, mockRepo, mockUsers, mockCache := newTestScoreService()

	mockUsers.On("FindIDByUsername", "player_1").Return(nil, nil)
	mockRepo.On("SaveScore", mock.Anything).
		Return(apperrors.NewStorageError("Failed to save score", errors.New("connection refused")))

	err := service.SaveScore(&ScoreRequest{Username: "player_1", Score: 1, Level: "easy"})
	assert.Error(t, err)
	assert.True(t, apperrors.IsStorage(err))
	mockCache.AssertNotCalled(t, "Invalidate")
}

func TestScoreService_TopScores_OrderedAndCapped(t *testing.T) {
	service, mockRepo, _, mockCache := newTestScoreService()

	stored := []Score{
		{Username: "a", Score: 900, Level: "extreme", TimeTaken: 4},
		{Username: "b", Score: 500, Level: "hard", TimeTaken: 3},
		{Username: "c", Score: 500, Level: "hard", TimeTaken: 9},
		{Username: "d", Score: 120, Level: "easy", TimeTaken: 50},
	}
	mockCache.On("GetTop").Return(nil, false)
	mockRepo.On("TopScores", TopScoresLimit).Return(stored, nil)
	mockCache.On("SetTop", mock.AnythingOfType("[]leaderboard.ScoreEntry")).Return()

	entries, err := service.TopScores()
	assert.NoError(t, err)
	assert.Len(t, entries, 4)
	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1], entries[i]
		ordered := prev.Score > cur.Score ||
			(prev.Score == cur.Score && prev.TimeTaken <= cur.TimeTaken)
		assert.True(t, ordered, "entries %d and %d out of order", i-1, i)
	}
	mockRepo.AssertExpectations(t)
}

func TestScoreService_TopScores_CacheHitSkipsRepo(t *testing.T) {
	service, mockRepo, _, mockCache := newTestScoreService()

	cached := []ScoreEntry{{Username: "a", Score: 900, Level: "extreme", TimeTaken: 4}}
	mockCache.On("GetTop").Return(cached, true)

	first, err := service.TopScores()
	assert.NoError(t, err)
	second, err := service.TopScores()
	assert.NoError(t, err)
	assert.Equal(t, first, second)
	mockRepo.AssertNotCalled(t, "TopScores", mock.Anything)
}

func TestScoreService_TopScores_EmptyOnStorageFailure(t *testing.T) {
	service, mockRepo, _, mockCache := newTestScoreService()

	mockCache.On("GetTop").Return(nil, false)
	mockRepo.On("TopScores", TopScoresLimit).
		Return(nil, apperrors.NewStorageError("Failed to fetch scores", errors.New("connection refused")))

	entries, err := service.TopScores()
	assert.NoError(t, err)
	assert.Empty(t, entries)
	mockCache.AssertNotCalled(t, "SetTop", mock.Anything)
}

func TestScoreService_TopScores_EmptyTableIsNotAnError(t *testing.T) {
	service, mockRepo, _, mockCache := newTestScoreService()

	mockCache.On("GetTop").Return(nil, false)
	mockRepo.On("TopScores", TopScoresLimit).Return([]Score{}, nil)
	mockCache.On("SetTop", mock.AnythingOfType("[]leaderboard.ScoreEntry")).Return()

	entries, err := service.TopScores()
	assert.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

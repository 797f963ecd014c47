package round

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/banana-math/BananaMathServer/internal/apperrors"
	"github.com/banana-math/BananaMathServer/internal/leaderboard"
	"github.com/banana-math/BananaMathServer/internal/puzzle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestRoundService() (*RoundService, *MockProvider, *MockScoreSaver, *MockNotifier) {
	mockProvider := &MockProvider{}
	mockScores := &MockScoreSaver{}
	mockNotifier := &MockNotifier{}
	return NewRoundService(mockProvider, mockScores, mockNotifier), mockProvider, mockScores, mockNotifier
}

func newActiveRound(level Level, remaining int, solution string) *Round {
	return &Round{
		ID:            "testround",
		Level:         level,
		Solution:      solution,
		TimeRemaining: remaining,
		Status:        StatusActive,
		stop:          make(chan struct{}),
	}
}

func TestRoundService_StartRound_Success(t *testing.T) {
	service, mockProvider, _, mockNotifier := newTestRoundService()
	session := NewSession("1", "player_1")

	mockProvider.On("FetchPuzzle", mock.Anything).
		Return(&puzzle.Puzzle{ImageURL: "https://example.com/p.png", Solution: "4"}, nil)
	mockNotifier.On("RoundStarted", "1", mock.AnythingOfType("*round.RoundInfo")).Return()
	mockNotifier.On("RoundTick", mock.Anything, mock.Anything).Return().Maybe()

	info, err := service.StartRound(context.Background(), session, LevelMedium)
	defer service.Cancel(session)

	assert.NoError(t, err)
	assert.Equal(t, LevelMedium, info.Level)
	assert.Equal(t, 45, info.TimeRemaining)
	assert.Equal(t, "https://example.com/p.png", info.ImageURL)
	assert.Equal(t, StatusActive, session.Current.Status)
	mockNotifier.AssertCalled(t, "RoundStarted", "1", mock.AnythingOfType("*round.RoundInfo"))
}

func TestRoundService_StartRound_UnknownLevel(t *testing.T) {
	service, mockProvider, _, _ := newTestRoundService()
	session := NewSession("1", "player_1")

	_, err := service.StartRound(context.Background(), session, Level("nightmare"))
	assert.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	mockProvider.AssertNotCalled(t, "FetchPuzzle", mock.Anything)
}

func TestRoundService_StartRound_ProviderFailure(t *testing.T) {
	service, mockProvider, _, mockNotifier := newTestRoundService()
	session := NewSession("1", "player_1")

	mockProvider.On("FetchPuzzle", mock.Anything).
		Return(nil, apperrors.NewProviderError("Could not load puzzle", errors.New("timeout")))

	_, err := service.StartRound(context.Background(), session, LevelEasy)
	assert.Error(t, err)
	assert.True(t, apperrors.IsProvider(err))
	assert.Nil(t, session.Current)
	mockNotifier.AssertNotCalled(t, "RoundStarted", mock.Anything, mock.Anything)
}

func TestRoundService_StartRound_StaleFetchDiscarded(t *testing.T) {
	service, mockProvider, _, mockNotifier := newTestRoundService()
	session := NewSession("1", "player_1")

	// The player leaves while the puzzle fetch is still in flight.
	mockProvider.On("FetchPuzzle", mock.Anything).
		Run(func(args mock.Arguments) { service.Cancel(session) }).
		Return(&puzzle.Puzzle{ImageURL: "https://example.com/p.png", Solution: "4"}, nil)

	_, err := service.StartRound(context.Background(), session, LevelEasy)
	assert.ErrorIs(t, err, ErrRoundCancelled)
	assert.Nil(t, session.Current)
	mockNotifier.AssertNotCalled(t, "RoundStarted", mock.Anything, mock.Anything)
}

func TestRoundService_SubmitAnswer_CorrectEasy(t *testing.T) {
	service, _, mockScores, _ := newTestRoundService()
	session := NewSession("1", "player_1")
	session.Current = newActiveRound(LevelEasy, 55, "4")

	saved := make(chan *leaderboard.ScoreRequest, 1)
	mockScores.On("SaveScore", mock.AnythingOfType("*leaderboard.ScoreRequest")).
		Run(func(args mock.Arguments) { saved <- args.Get(0).(*leaderboard.ScoreRequest) }).
		Return(nil)

	result, err := service.SubmitAnswer(session, "4")
	assert.NoError(t, err)
	assert.Equal(t, OutcomeCorrect, result.Outcome)
	assert.Equal(t, 210, result.Delta)
	assert.Equal(t, 210, result.Score)
	assert.Equal(t, 5, result.TimeTaken)
	assert.Equal(t, StatusCompleted, session.Current.Status)

	select {
	case req := <-saved:
		assert.Equal(t, "player_1", req.Username)
		assert.Equal(t, 210, req.Score)
		assert.Equal(t, "easy", req.Level)
		assert.Equal(t, 5, req.TimeTaken)
	case <-time.After(time.Second):
		t.Fatal("score was never saved")
	}
}

func TestRoundService_SubmitAnswer_CorrectExtreme(t *testing.T) {
	service, _, mockScores, _ := newTestRoundService()
	session := NewSession("1", "player_1")
	session.Current = newActiveRound(LevelExtreme, 5, "9")

	saved := make(chan struct{}, 1)
	mockScores.On("SaveScore", mock.Anything).
		Run(func(args mock.Arguments) { saved <- struct{}{} }).
		Return(nil)

	result, err := service.SubmitAnswer(session, "9")
	assert.NoError(t, err)
	assert.Equal(t, 440, result.Delta)
	assert.Equal(t, 15, result.TimeTaken)

	select {
	case <-saved:
	case <-time.After(time.Second):
		t.Fatal("score was never saved")
	}
}

func TestRoundService_SubmitAnswer_NoNumericCoercion(t *testing.T) {
	service, _, mockScores, _ := newTestRoundService()
	session := NewSession("1", "player_1")
	session.Current = newActiveRound(LevelEasy, 30, "7")

	result, err := service.SubmitAnswer(session, "007")
	assert.NoError(t, err)
	assert.Equal(t, OutcomeIncorrect, result.Outcome)
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, StatusActive, session.Current.Status)
	assert.Equal(t, 30, session.Current.TimeRemaining)
	mockScores.AssertNotCalled(t, "SaveScore", mock.Anything)
}

func TestRoundService_SubmitAnswer_EmptyAnswer(t *testing.T) {
	service, _, mockScores, _ := newTestRoundService()
	session := NewSession("1", "player_1")
	session.Current = newActiveRound(LevelHard, 12, "3")

	for _, candidate := range []string{"", "   ", "\t\n"} {
		result, err := service.SubmitAnswer(session, candidate)
		assert.NoError(t, err)
		assert.Equal(t, OutcomeEmpty, result.Outcome)
		assert.Equal(t, 12, result.TimeRemaining)
		assert.Equal(t, StatusActive, session.Current.Status)
	}
	mockScores.AssertNotCalled(t, "SaveScore", mock.Anything)
}

func TestRoundService_SubmitAnswer_AfterExpiryIsNoOp(t *testing.T) {
	service, _, mockScores, _ := newTestRoundService()
	session := NewSession("1", "player_1")
	r := newActiveRound(LevelEasy, 10, "4")
	r.Status = StatusExpired
	session.Current = r

	result, err := service.SubmitAnswer(session, "4")
	assert.NoError(t, err)
	assert.Equal(t, OutcomeRoundOver, result.Outcome)
	assert.Equal(t, 0, session.Score)
	mockScores.AssertNotCalled(t, "SaveScore", mock.Anything)
}

func TestRoundService_SubmitAnswer_NoActiveRound(t *testing.T) {
	service, _, _, _ := newTestRoundService()
	session := NewSession("1", "player_1")

	_, err := service.SubmitAnswer(session, "4")
	assert.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestRoundService_SubmitAnswer_AnonymousScoreNotSaved(t *testing.T) {
	service, _, mockScores, _ := newTestRoundService()
	session := NewSession("1", "")
	session.Current = newActiveRound(LevelEasy, 55, "4")

	result, err := service.SubmitAnswer(session, "4")
	assert.NoError(t, err)
	assert.Equal(t, OutcomeCorrect, result.Outcome)

	time.Sleep(50 * time.Millisecond)
	mockScores.AssertNotCalled(t, "SaveScore", mock.Anything)
}

func TestRoundService_ScoreCarriesAcrossRounds(t *testing.T) {
	service, _, _, _ := newTestRoundService()
	session := NewSession("1", "")
	session.Current = newActiveRound(LevelEasy, 55, "4")

	first, err := service.SubmitAnswer(session, "4")
	assert.NoError(t, err)
	assert.Equal(t, 210, first.Score)

	// Next level keeps the running total.
	session.Current = newActiveRound(LevelMedium, 40, "6")
	second, err := service.SubmitAnswer(session, "6")
	assert.NoError(t, err)
	assert.Equal(t, (100+80)*2, second.Delta)
	assert.Equal(t, 210+360, second.Score)

	// Only an explicit new game resets it.
	service.NewGame(session)
	assert.Equal(t, 0, session.Score)
	assert.Nil(t, session.Current)
}

func TestRoundService_Tick_DecrementsAndNotifies(t *testing.T) {
	service, _, _, mockNotifier := newTestRoundService()
	session := NewSession("1", "player_1")
	r := newActiveRound(LevelEasy, 3, "4")
	session.Current = r

	mockNotifier.On("RoundTick", "1", 2).Return()

	done := service.tick(session, r)
	assert.False(t, done)
	assert.Equal(t, 2, r.TimeRemaining)
	mockNotifier.AssertExpectations(t)
}

func TestRoundService_Tick_ExpiryEndsRoundWithoutScore(t *testing.T) {
	service, _, mockScores, mockNotifier := newTestRoundService()
	session := NewSession("1", "player_1")
	r := newActiveRound(LevelExtreme, 1, "4")
	session.Current = r

	mockNotifier.On("RoundExpired", "1").Return()

	done := service.tick(session, r)
	assert.True(t, done)
	assert.Equal(t, StatusExpired, r.Status)
	assert.Equal(t, 0, session.Score)
	mockNotifier.AssertExpectations(t)
	mockScores.AssertNotCalled(t, "SaveScore", mock.Anything)

	// Expiry already stopped the countdown; a second stop is a no-op.
	r.stopCountdown()
}

func TestRoundService_Tick_AfterCompletionIsNoOp(t *testing.T) {
	service, _, _, mockNotifier := newTestRoundService()
	session := NewSession("1", "player_1")
	r := newActiveRound(LevelEasy, 20, "4")
	r.Status = StatusCompleted
	session.Current = r

	done := service.tick(session, r)
	assert.True(t, done)
	assert.Equal(t, 20, r.TimeRemaining)
	mockNotifier.AssertNotCalled(t, "RoundExpired", mock.Anything)
	mockNotifier.AssertNotCalled(t, "RoundTick", mock.Anything, mock.Anything)
}

func TestRoundService_ExpiryThenSubmissionResolvesDeterministically(t *testing.T) {
	service, _, mockScores, mockNotifier := newTestRoundService()
	session := NewSession("1", "player_1")
	r := newActiveRound(LevelHard, 1, "4")
	session.Current = r

	mockNotifier.On("RoundExpired", "1").Return()

	service.tick(session, r)
	result, err := service.SubmitAnswer(session, "4")
	assert.NoError(t, err)
	assert.Equal(t, OutcomeRoundOver, result.Outcome)
	mockScores.AssertNotCalled(t, "SaveScore", mock.Anything)
}

func TestRoundService_SubmissionThenExpiryResolvesDeterministically(t *testing.T) {
	service, _, mockScores, mockNotifier := newTestRoundService()
	session := NewSession("1", "player_1")
	r := newActiveRound(LevelHard, 1, "4")
	session.Current = r

	saved := make(chan struct{}, 1)
	mockScores.On("SaveScore", mock.Anything).
		Run(func(args mock.Arguments) { saved <- struct{}{} }).
		Return(nil)

	result, err := service.SubmitAnswer(session, "4")
	assert.NoError(t, err)
	assert.Equal(t, OutcomeCorrect, result.Outcome)

	// The tick that would have expired the round loses the race.
	done := service.tick(session, r)
	assert.True(t, done)
	assert.Equal(t, StatusCompleted, r.Status)
	mockNotifier.AssertNotCalled(t, "RoundExpired", mock.Anything)

	select {
	case <-saved:
	case <-time.After(time.Second):
		t.Fatal("score was never saved")
	}
}

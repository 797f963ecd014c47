package round

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/banana-math/BananaMathServer/internal/apperrors"
	"github.com/banana-math/BananaMathServer/internal/leaderboard"
	"github.com/banana-math/BananaMathServer/internal/puzzle"
	"github.com/google/uuid"
)

// ErrRoundCancelled reports that the player left or restarted while the
// puzzle fetch was still in flight; the stale result was discarded.
var ErrRoundCancelled = errors.New("round cancelled")

// Notifier pushes round events to the player. The websocket layer implements
// it; tests swap in a mock.
type Notifier interface {
	RoundStarted(playerID string, info *RoundInfo)
	RoundTick(playerID string, remaining int)
	RoundExpired(playerID string)
}

type ScoreSaver interface {
	SaveScore(req *leaderboard.ScoreRequest) error
}

type RoundService struct {
	provider puzzle.Provider
	scores   ScoreSaver
	notifier Notifier
}

func NewRoundService(provider puzzle.Provider, scores ScoreSaver, notifier Notifier) *RoundService {
	return &RoundService{provider: provider, scores: scores, notifier: notifier}
}

// NewGame drops any live round and resets the session score. Starting the
// next level goes through StartRound alone and keeps the score.
func (s *RoundService) NewGame(session *Session) {
	session.mu.Lock()
	defer session.mu.Unlock()

	if cur := session.Current; cur != nil {
		cur.stopCountdown()
		session.Current = nil
	}
	session.Score = 0
}

func (s *RoundService) StartRound(ctx context.Context, session *Session, level Level) (*RoundInfo, error) {
	allotment, ok := LevelTimes[level]
	if !ok {
		return nil, apperrors.NewValidationError("Unknown level")
	}

	r := &Round{
		ID:            uuid.New().String()[:8],
		Level:         level,
		TimeRemaining: allotment,
		Status:        StatusIdle,
		stop:          make(chan struct{}),
	}

	session.mu.Lock()
	if prev := session.Current; prev != nil {
		prev.stopCountdown()
	}
	session.Current = r
	session.mu.Unlock()

	fetched, err := s.provider.FetchPuzzle(ctx)
	if err != nil {
		session.mu.Lock()
		if session.Current == r {
			session.Current = nil
		}
		session.mu.Unlock()
		return nil, err
	}

	session.mu.Lock()
	if session.Current != r {
		// The player left or restarted while the fetch was in flight.
		session.mu.Unlock()
		return nil, ErrRoundCancelled
	}
	r.ImageURL = fetched.ImageURL
	r.Solution = fetched.Solution
	r.Status = StatusActive
	info := &RoundInfo{
		ID:            r.ID,
		Level:         r.Level,
		TimeRemaining: r.TimeRemaining,
		ImageURL:      r.ImageURL,
	}
	session.mu.Unlock()

	s.notifier.RoundStarted(session.PlayerID, info)
	go s.runCountdown(session, r)

	return info, nil
}

func (s *RoundService) SubmitAnswer(session *Session, candidate string) (*AnswerResult, error) {
	trimmed := strings.TrimSpace(candidate)

	session.mu.Lock()

	r := session.Current
	if r == nil || r.Status == StatusIdle {
		session.mu.Unlock()
		return nil, apperrors.NewValidationError("No active round")
	}

	if r.terminal() {
		result := &AnswerResult{Outcome: OutcomeRoundOver, Score: session.Score}
		session.mu.Unlock()
		return result, nil
	}

	if trimmed == "" {
		result := &AnswerResult{
			Outcome:       OutcomeEmpty,
			Score:         session.Score,
			TimeRemaining: r.TimeRemaining,
		}
		session.mu.Unlock()
		return result, nil
	}

	r.Status = StatusAwaiting

	// Exact string comparison: "007" does not match "7".
	if trimmed != r.Solution {
		r.Status = StatusActive
		result := &AnswerResult{
			Outcome:       OutcomeIncorrect,
			Score:         session.Score,
			TimeRemaining: r.TimeRemaining,
		}
		session.mu.Unlock()
		return result, nil
	}

	r.stopCountdown()
	r.Status = StatusCompleted

	delta := (100 + r.TimeRemaining*2) * LevelMultipliers[r.Level]
	session.Score += delta
	timeTaken := LevelTimes[r.Level] - r.TimeRemaining

	result := &AnswerResult{
		Outcome:       OutcomeCorrect,
		Delta:         delta,
		Score:         session.Score,
		TimeRemaining: r.TimeRemaining,
		TimeTaken:     timeTaken,
	}
	username := session.Username
	level := r.Level
	total := session.Score
	session.mu.Unlock()

	if username != "" {
		go s.persistScore(username, total, level, timeTaken)
	}

	return result, nil
}

// Cancel stops the countdown and destroys the live round, e.g. when the
// player navigates away or disconnects.
func (s *RoundService) Cancel(session *Session) {
	session.mu.Lock()
	defer session.mu.Unlock()

	if cur := session.Current; cur != nil {
		cur.stopCountdown()
		session.Current = nil
	}
}

// persistScore is fire-and-forget: the player moves on to the completion
// view whether or not the leaderboard write lands.
func (s *RoundService) persistScore(username string, total int, level Level, timeTaken int) {
	err := s.scores.SaveScore(&leaderboard.ScoreRequest{
		Username:  username,
		Score:     total,
		Level:     string(level),
		TimeTaken: timeTaken,
	})
	if err != nil {
		log.Println("Error saving score for", username, ":", err)
	}
}

func (s *RoundService) runCountdown(session *Session, r *Round) {
	ticker := time.NewTicker(1000 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			if s.tick(session, r) {
				return
			}
		}
	}
}

// tick advances the countdown by one second. It reports true when the round
// no longer needs the ticker.
func (s *RoundService) tick(session *Session, r *Round) bool {
	session.mu.Lock()

	if r.Status != StatusActive && r.Status != StatusAwaiting {
		session.mu.Unlock()
		return true
	}

	r.TimeRemaining--
	remaining := r.TimeRemaining

	if remaining <= 0 {
		r.Status = StatusExpired
		r.stopCountdown()
		session.mu.Unlock()
		s.notifier.RoundExpired(session.PlayerID)
		return true
	}

	session.mu.Unlock()
	s.notifier.RoundTick(session.PlayerID, remaining)
	return false
}

package leaderboard

import (
	"log"

	"github.com/banana-math/BananaMathServer/internal/apperrors"
	"github.com/banana-math/BananaMathServer/pkg/clock"
)

const TopScoresLimit = 50

type ScoreService struct {
	repo  ScoreRepository
	users UserResolver
	cache ScoreCache
	clock clock.Clock
}

func NewScoreService(repo ScoreRepository, users UserResolver, cache ScoreCache, clk clock.Clock) *ScoreService {
	return &ScoreService{repo: repo, users: users, cache: cache, clock: clk}
}

// SaveScore accepts every submission, including ones whose username matches
// no account; those are stored with a null user id.
func (s *ScoreService) SaveScore(req *ScoreRequest) error {
	if req.Username == "" || req.Level == "" {
		return apperrors.NewValidationError("Missing required fields")
	}
	if req.Score < 0 || req.TimeTaken < 0 {
		return apperrors.NewValidationError("Score and time taken must not be negative")
	}

	userID, err := s.users.FindIDByUsername(req.Username)
	if err != nil {
		// An unreachable users table must not drop the score row.
		log.Println("Error resolving username for score:", err)
		userID = nil
	}

	score := &Score{
		UserID:    userID,
		Username:  req.Username,
		Score:     req.Score,
		Level:     req.Level,
		TimeTaken: req.TimeTaken,
		PlayedAt:  s.clock.Now(),
	}

	if err := s.repo.SaveScore(score); err != nil {
		return err
	}

	s.cache.Invalidate()
	return nil
}

// TopScores degrades to an empty list when the store is unreachable; the
// leaderboard view renders "no scores yet" instead of failing.
func (s *ScoreService) TopScores() ([]ScoreEntry, error) {
	if entries, ok := s.cache.GetTop(); ok {
		return entries, nil
	}

	scores, err := s.repo.TopScores(TopScoresLimit)
	if err != nil {
		log.Println("Error fetching top scores:", err)
		return []ScoreEntry{}, nil
	}

	entries := make([]ScoreEntry, 0, len(scores))
	for _, score := range scores {
		entries = append(entries, ScoreEntry{
			Username:  score.Username,
			Score:     score.Score,
			Level:     score.Level,
			TimeTaken: score.TimeTaken,
			PlayedAt:  score.PlayedAt,
		})
	}

	s.cache.SetTop(entries)
	return entries, nil
}

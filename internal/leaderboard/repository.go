package leaderboard

import (
	"github.com/banana-math/BananaMathServer/internal/apperrors"
	"github.com/banana-math/BananaMathServer/internal/user"
	"github.com/banana-math/BananaMathServer/pkg/db"
)

type ScoreRepository interface {
	SaveScore(score *Score) error
	TopScores(limit int) ([]Score, error)
}

type GormScoreRepository struct{}

func NewGormScoreRepository() *GormScoreRepository {
	return &GormScoreRepository{}
}

func (r *GormScoreRepository) SaveScore(score *Score) error {
	if err := db.DB.Create(score).Error; err != nil {
		return apperrors.NewStorageError("Failed to save score", err)
	}
	return nil
}

// TopScores ranks by score descending; at equal score the faster solve wins.
func (r *GormScoreRepository) TopScores(limit int) ([]Score, error) {
	scores := []Score{}
	err := db.DB.
		Order("score DESC, time_taken ASC").
		Limit(limit).
		Find(&scores).Error
	if err != nil {
		return nil, apperrors.NewStorageError("Failed to fetch scores", err)
	}

	return scores, nil
}

// UserResolver narrows the user repository to the single lookup score saving
// needs.
type UserResolver interface {
	FindIDByUsername(username string) (*uint, error)
}

var _ UserResolver = (*user.GormUserRepository)(nil)

package round

import "sync"

type Level string

const (
	LevelEasy    Level = "easy"
	LevelMedium  Level = "medium"
	LevelHard    Level = "hard"
	LevelExtreme Level = "extreme"
)

// LevelTimes is the initial countdown allotment in seconds per level.
var LevelTimes = map[Level]int{
	LevelEasy:    60,
	LevelMedium:  45,
	LevelHard:    30,
	LevelExtreme: 20,
}

var LevelMultipliers = map[Level]int{
	LevelEasy:    1,
	LevelMedium:  2,
	LevelHard:    3,
	LevelExtreme: 4,
}

type Status string

const (
	StatusIdle      Status = "IDLE"
	StatusActive    Status = "ACTIVE"
	StatusAwaiting  Status = "AWAITING_SUBMISSION"
	StatusCompleted Status = "COMPLETED"
	StatusExpired   Status = "EXPIRED"
)

type Outcome string

const (
	OutcomeCorrect   Outcome = "CORRECT"
	OutcomeIncorrect Outcome = "INCORRECT"
	OutcomeEmpty     Outcome = "EMPTY"
	OutcomeRoundOver Outcome = "ROUND_OVER"
)

// Round is one play attempt at a single level. A round that reached
// COMPLETED or EXPIRED is dead; playing again builds a new one.
type Round struct {
	ID            string
	Level         Level
	ImageURL      string
	Solution      string
	TimeRemaining int
	Status        Status

	stop     chan struct{}
	stopOnce sync.Once
}

// stopCountdown is safe to call any number of times.
func (r *Round) stopCountdown() {
	r.stopOnce.Do(func() {
		close(r.stop)
	})
}

func (r *Round) terminal() bool {
	return r.Status == StatusCompleted || r.Status == StatusExpired
}

// Session is the per-player play session. The score carries over between
// consecutive rounds and only NewGame resets it. The mutex serializes the
// countdown tick against answer submission, so whichever reaches a terminal
// state first wins and the other becomes a no-op.
type Session struct {
	mu       sync.Mutex
	PlayerID string
	Username string
	Score    int
	Current  *Round
}

func NewSession(playerID, username string) *Session {
	return &Session{PlayerID: playerID, Username: username}
}

type RoundInfo struct {
	ID            string `json:"roundId"`
	Level         Level  `json:"level"`
	TimeRemaining int    `json:"timeRemaining"`
	ImageURL      string `json:"imageUrl"`
}

type AnswerResult struct {
	Outcome       Outcome `json:"outcome"`
	Delta         int     `json:"delta,omitempty"`
	Score         int     `json:"score"`
	TimeRemaining int     `json:"timeRemaining"`
	TimeTaken     int     `json:"timeTaken,omitempty"`
}

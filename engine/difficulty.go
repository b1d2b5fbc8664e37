package engine

import (
	"fmt"
	"strings"
	"time"
)

type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// DifficultyProfile is the strength setting of one tier.
type DifficultyProfile struct {
	SearchDepth           int           `json:"search_depth"`
	RandomMoveProbability float64       `json:"random_move_probability"`
	WinPriority           bool          `json:"win_priority"`
	TimeBudget            time.Duration `json:"time_budget"`
}

var profiles = [...]DifficultyProfile{
	Easy: {
		SearchDepth:           1,
		RandomMoveProbability: 0.3,
		WinPriority:           false,
		TimeBudget:            1000 * time.Millisecond,
	},
	Medium: {
		SearchDepth:           2,
		RandomMoveProbability: 0.1,
		WinPriority:           true,
		TimeBudget:            1000 * time.Millisecond,
	},
	Hard: {
		SearchDepth:           3,
		RandomMoveProbability: 0,
		WinPriority:           true,
		TimeBudget:            1500 * time.Millisecond,
	},
}

// Difficulties lists every tier from weakest to strongest.
func Difficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

func (d Difficulty) Profile() DifficultyProfile {
	if !d.valid() {
		return profiles[Medium]
	}
	return profiles[d]
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
}

// Next cycles easy -> medium -> hard -> easy.
func (d Difficulty) Next() Difficulty {
	return (d + 1) % Difficulty(len(profiles))
}

func ParseDifficulty(raw string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	default:
		return Medium, fmt.Errorf("unknown difficulty %q", raw)
	}
}

func (d Difficulty) MarshalText() ([]byte, error) {
	if !d.valid() {
		return nil, fmt.Errorf("unknown difficulty %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Difficulty) valid() bool {
	return d >= Easy && d <= Hard
}

package game

import (
	"time"

	"gomoku/engine"
)

// Settings are the tunables of one session.
type Settings struct {
	Difficulty    engine.Difficulty `json:"difficulty"`
	TurnLimit     time.Duration     `json:"turn_limit"`
	WarnRemaining time.Duration     `json:"warn_remaining"`
	ThinkDelay    ThinkDelays       `json:"think_delay"`
}

// ThinkDelays is the pause before the engine starts computing, per tier.
type ThinkDelays struct {
	Easy   time.Duration `json:"easy"`
	Medium time.Duration `json:"medium"`
	Hard   time.Duration `json:"hard"`
}

func (d ThinkDelays) For(difficulty engine.Difficulty) time.Duration {
	switch difficulty {
	case engine.Easy:
		return d.Easy
	case engine.Hard:
		return d.Hard
	default:
		return d.Medium
	}
}

func DefaultSettings() Settings {
	return Settings{
		Difficulty:    engine.Medium,
		TurnLimit:     30 * time.Second,
		WarnRemaining: 10 * time.Second,
		ThinkDelay: ThinkDelays{
			Easy:   1200 * time.Millisecond,
			Medium: 800 * time.Millisecond,
			Hard:   1800 * time.Millisecond,
		},
	}
}

func (s Settings) normalized() Settings {
	defaults := DefaultSettings()
	if s.TurnLimit <= 0 {
		s.TurnLimit = defaults.TurnLimit
	}
	if s.WarnRemaining < 0 || s.WarnRemaining >= s.TurnLimit {
		s.WarnRemaining = 0
	}
	if s.ThinkDelay.Easy < 0 {
		s.ThinkDelay.Easy = 0
	}
	if s.ThinkDelay.Medium < 0 {
		s.ThinkDelay.Medium = 0
	}
	if s.ThinkDelay.Hard < 0 {
		s.ThinkDelay.Hard = 0
	}
	return s
}

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/adrg/xdg"

	"gomoku/engine"
)

var cfgFile = "gomoku/terminal.json"

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("config error: %s", e.err)
}

type ConfigColors struct {
	Board        int `json:"board"`
	Black        int `json:"black"`
	White        int `json:"white"`
	Line         int `json:"line"`
	CursorBG     int `json:"cursor_bg"`
	LastPlayedBG int `json:"last_played_bg"`
	WinningBG    int `json:"winning_bg"`
}

type ConfigSymbols struct {
	BlackStone rune `json:"black"`
	WhiteStone rune `json:"white"`
	Empty      rune `json:"empty"`
}

type Theme struct {
	DrawCursorBackground bool          `json:"draw_cursor_bg"`
	Colors               ConfigColors  `json:"colors"`
	Symbols              ConfigSymbols `json:"symbols"`
}

type Config struct {
	Theme      Theme  `json:"theme"`
	Difficulty string `json:"difficulty"`
	LogFile    string `json:"log_file"`
}

func DefaultConfig() Config {
	return Config{
		Theme: Theme{
			DrawCursorBackground: true,
			Colors: ConfigColors{
				Board:        180,
				Black:        232,
				White:        255,
				Line:         94,
				CursorBG:     4,
				LastPlayedBG: 2,
				WinningBG:    1,
			},
			Symbols: ConfigSymbols{
				BlackStone: '●',
				WhiteStone: '●',
				Empty:      '┼',
			},
		},
		Difficulty: "medium",
	}
}

func LoadConfig() (Config, error) {
	config := DefaultConfig()
	if absPath, err := xdg.SearchConfigFile(cfgFile); err == nil {
		data, err := os.ReadFile(absPath)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
		if err == nil {
			if err := json.Unmarshal(data, &config); err != nil {
				return Config{}, &InvalidConfig{fmt.Sprintf("%s: %v", absPath, err)}
			}
		}
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) Validate() error {
	for _, r := range []rune{c.Theme.Symbols.BlackStone, c.Theme.Symbols.WhiteStone, c.Theme.Symbols.Empty} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"unicode characters 0-31 and 127-159 are not allowed as symbols"}
		}
	}
	for _, color := range []int{c.Theme.Colors.Board, c.Theme.Colors.Black, c.Theme.Colors.White, c.Theme.Colors.Line, c.Theme.Colors.CursorBG, c.Theme.Colors.LastPlayedBG, c.Theme.Colors.WinningBG} {
		if color < 0 || color > 255 {
			return &InvalidConfig{fmt.Sprintf("color %d is outside the 256-color palette", color)}
		}
	}
	if _, err := engine.ParseDifficulty(c.Difficulty); err != nil {
		return &InvalidConfig{err.Error()}
	}
	return nil
}

// LogPath is where the session log goes; the terminal itself is owned by
// the UI.
func (c Config) LogPath() (string, error) {
	if c.LogFile != "" {
		return c.LogFile, nil
	}
	return xdg.StateFile("gomoku/terminal.log")
}

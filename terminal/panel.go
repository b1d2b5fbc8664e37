package main

import (
	"fmt"
	"strings"
	"time"

	"gomoku/game"
)

var noticeColors = map[game.NoticeLevel]string{
	game.NoticeInfo:    "white",
	game.NoticeWarn:    "yellow",
	game.NoticeSuccess: "green",
	game.NoticeError:   "red",
}

// panelText renders the side panel for state and the latest notice.
func panelText(state game.State, last *game.Notice) string {
	var text strings.Builder
	text.WriteString("[white::b]Gomoku[-:-:-]\n\n")
	fmt.Fprintf(&text, "  Difficulty: %s\n", state.Difficulty)
	fmt.Fprintf(&text, "  Moves:      %d\n\n", state.MoveCount)

	switch state.Status {
	case game.StatusRunning:
		seconds := int(state.TurnRemaining.Round(time.Second) / time.Second)
		if state.ToMove == game.HumanSide {
			fmt.Fprintf(&text, "  ● Your move   %2ds\n", seconds)
		} else if state.EngineThinking {
			fmt.Fprintf(&text, "  ○ Thinking... %2ds\n", seconds)
		} else {
			fmt.Fprintf(&text, "  ○ Engine      %2ds\n", seconds)
		}
	case game.StatusBlackWon:
		fmt.Fprintf(&text, "  [green::b]You win[-:-:-] (%s)\n", state.WinReason)
	case game.StatusWhiteWon:
		fmt.Fprintf(&text, "  [red::b]Engine wins[-:-:-] (%s)\n", state.WinReason)
	case game.StatusDraw:
		text.WriteString("  Draw\n")
	}

	if last != nil {
		fmt.Fprintf(&text, "\n  [%s]%s[-]\n", noticeColors[last.Level], tviewEscape(last.Text))
	}

	text.WriteString(`
  hjkl/↑↓←→ move   ⏎ play
  d difficulty   r restart   q quit`)
	return text.String()
}

func tviewEscape(text string) string {
	return strings.ReplaceAll(text, "[", "[[")
}

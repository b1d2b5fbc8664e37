package game

import "gomoku/engine"

type HistoryEntry struct {
	Move      engine.Move   `json:"move"`
	Player    engine.Player `json:"player"`
	ElapsedMs int64         `json:"elapsed_ms"`
	IsEngine  bool          `json:"is_engine"`
	Reason    engine.Reason `json:"reason,omitempty"`
}

type MoveHistory struct {
	entries []HistoryEntry
}

func (h *MoveHistory) Clear() {
	h.entries = nil
}

func (h *MoveHistory) Push(entry HistoryEntry) {
	h.entries = append(h.entries, entry)
}

func (h MoveHistory) Size() int {
	return len(h.entries)
}

func (h MoveHistory) All() []HistoryEntry {
	return append([]HistoryEntry(nil), h.entries...)
}

func (h MoveHistory) Last() (HistoryEntry, bool) {
	if len(h.entries) == 0 {
		return HistoryEntry{}, false
	}
	return h.entries[len(h.entries)-1], true
}

package game

type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeWarn    NoticeLevel = "warn"
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notice is a short message for the player, shown once.
type Notice struct {
	Level NoticeLevel `json:"level"`
	Text  string      `json:"text"`
}

package emoji

import "sync/atomic"

// emojiMap holds [emoji, fallback] pairs
var emojiMap = map[string][2]string{
	"city":       {"🏙️", "[CITY]"},
	"report":     {"📄", "[RPT]"},
	"summary":    {"📋", "[SUM]"},
	"link":       {"🔗", "[LNK]"},
	"pdf":        {"📎", "[PDF]"},
	"downloaded": {"💾", "[DL]"},
	"statistics": {"📊", "[STATS]"},
	"success":    {"✅", "[OK]"},
	"error":      {"❌", "[ERR]"},
	"warning":    {"⚠️", "[WRN]"},
	"info":       {"ℹ️", "[INF]"},
	"busy":       {"⏳", "[...]"},
	"timeout":    {"⌛", "[TMO]"},
	"details":    {"🔍", "[DET]"},
	"help":       {"❓", "[?]"},
	"door":       {"🚪", "[EXIT]"},
}

var emojiDisabled atomic.Bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled.Store(disabled)
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled.Load()
}

// GetEmoji returns emoji or fallback based on no-emoji setting
func GetEmoji(key string) string {
	if mapping, exists := emojiMap[key]; exists {
		if emojiDisabled.Load() {
			return mapping[1]
		}
		return mapping[0]
	}
	return "[?]"
}

// ForLinkType picks the symbol for a relevant link's type
func ForLinkType(linkType string) string {
	switch linkType {
	case "PDF", "pdf":
		return GetEmoji("pdf")
	default:
		return GetEmoji("link")
	}
}

package emoji

import "testing"

func TestGetEmoji(t *testing.T) {
	defer SetEmojiDisabled(false)

	tests := []struct {
		key      string
		disabled bool
		expected string
	}{
		{"success", false, "✅"},
		{"success", true, "[OK]"},
		{"pdf", true, "[PDF]"},
		{"nonexistent", false, "[?]"},
		{"nonexistent", true, "[?]"},
	}

	for _, tt := range tests {
		SetEmojiDisabled(tt.disabled)
		if got := GetEmoji(tt.key); got != tt.expected {
			t.Errorf("GetEmoji(%q) with disabled=%v = %q, expected %q", tt.key, tt.disabled, got, tt.expected)
		}
	}
}

func TestForLinkType(t *testing.T) {
	SetEmojiDisabled(true)
	defer SetEmojiDisabled(false)

	if got := ForLinkType("PDF"); got != "[PDF]" {
		t.Errorf("Expected [PDF], got %q", got)
	}
	if got := ForLinkType("HTML"); got != "[LNK]" {
		t.Errorf("Expected [LNK], got %q", got)
	}
	if !IsEmojiDisabled() {
		t.Error("Expected emoji disabled")
	}
}

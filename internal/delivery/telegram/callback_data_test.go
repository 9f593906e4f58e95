package telegram

import (
	"testing"
)

func TestCallbackData_RoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		data       string
		wantAction string
		wantParams int
	}{
		{"menu", buildMenuCallback(), actionMenu, 0},
		{"page", buildPageCallback(12), actionPage, 1},
		{"range", buildRangeCallback(3, 7), actionRange, 2},
		{"answer", buildAnswerCallback(4, 2), actionAnswer, 2},
		{"buy", buildBuyCallback("theme_green"), actionBuy, 1},
		{"challenge-list", buildChallengeCallback(), actionChallenge, 0},
		{"challenge-start", buildChallengeCallback("ramadan"), actionChallenge, 1},
		{"settings-count", buildSettingsCallback(settingsCount, "10"), actionSettings, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cd := decodeCallback(tt.data)
			if cd.Action != tt.wantAction {
				t.Errorf("Action = %q, want %q", cd.Action, tt.wantAction)
			}
			if len(cd.Params) != tt.wantParams {
				t.Errorf("len(Params) = %d, want %d", len(cd.Params), tt.wantParams)
			}
			if cd.encode() != tt.data {
				t.Errorf("encode() = %q, want %q", cd.encode(), tt.data)
			}
			if len(tt.data) > 64 {
				t.Errorf("callback data %q exceeds the 64 byte limit", tt.data)
			}
		})
	}
}

func TestCallbackData_IntParam(t *testing.T) {
	cd := decodeCallback(buildAnswerCallback(3, 1))

	num, ok := cd.intParam(0)
	if !ok || num != 3 {
		t.Errorf("intParam(0) = %d, %v, want 3, true", num, ok)
	}
	choice, ok := cd.intParam(1)
	if !ok || choice != 1 {
		t.Errorf("intParam(1) = %d, %v, want 1, true", choice, ok)
	}
	if _, ok := cd.intParam(2); ok {
		t.Error("intParam(2) ok = true, want false")
	}

	bad := decodeCallback("ans:x:1")
	if _, ok := bad.intParam(0); ok {
		t.Error("intParam(0) on non-number ok = true, want false")
	}
	if got := bad.param(5); got != "" {
		t.Errorf("param(5) = %q, want empty", got)
	}
}

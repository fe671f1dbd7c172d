package football

import "testing"

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]Status{
		"":          StatusScheduled,
		" in_play ": StatusInPlay,
		"TIMED":     StatusScheduled,
		"suspended": StatusPostponed,
		"FINISHED":  StatusFinished,
		"something": StatusScheduled,
		"cancelled": StatusCancelled,
	}
	for input, want := range cases {
		if got := NormalizeStatus(input); got != want {
			t.Fatalf("NormalizeStatus(%q) = %s, want %s", input, got, want)
		}
	}
}

func TestStatusIsLive(t *testing.T) {
	for _, s := range []Status{StatusLive, StatusInPlay, StatusPaused} {
		if !s.IsLive() {
			t.Fatalf("expected %s to be live", s)
		}
	}
	for _, s := range []Status{StatusScheduled, StatusFinished, StatusPostponed, StatusCancelled} {
		if s.IsLive() {
			t.Fatalf("expected %s not to be live", s)
		}
	}
}

func TestParseProviderName(t *testing.T) {
	got, err := ParseProviderName(" API_FOOTBALL ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != ProviderAPIFootball {
		t.Fatalf("unexpected provider: %s", got)
	}
	if _, err := ParseProviderName("cache"); err == nil {
		t.Fatalf("expected cache tag to be rejected as a provider")
	}
}

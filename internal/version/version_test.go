package version

import "testing"

func TestFormatVersion(t *testing.T) {
	tests := []struct {
		version, commit, date string
		want                  string
	}{
		{"dev", "none", "unknown", "dev (development build)"},
		{"v0.3.0", "a1b2c3d", "2026-10-01", "v0.3.0 (commit: a1b2c3d, built: 2026-10-01)"},
	}

	for _, tt := range tests {
		if got := FormatVersion(tt.version, tt.commit, tt.date); got != tt.want {
			t.Errorf("FormatVersion(%q) = %q, want %q", tt.version, got, tt.want)
		}
	}
}

func TestUserAgent(t *testing.T) {
	if got := UserAgent(); got != "linkedin-assistant/"+Version {
		t.Errorf("UserAgent() = %q", got)
	}
}

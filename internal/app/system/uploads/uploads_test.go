package uploads

import (
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean name", "report.pdf", "report.pdf"},
		{"spaces replaced", "my report.pdf", "my_report.pdf"},
		{"path stripped", "../../etc/passwd", "passwd"},
		{"special chars replaced", "ev!l@file#.png", "ev_l_file_.png"},
		{"empty becomes file", "", "file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeFilename(tt.input)
			if got != tt.want {
				t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeFilename_LongNameKeepsExtension(t *testing.T) {
	long := strings.Repeat("a", 150) + ".jpeg"
	got := sanitizeFilename(long)
	if len(got) > 100 {
		t.Errorf("expected length <= 100, got %d", len(got))
	}
	if !strings.HasSuffix(got, ".jpeg") {
		t.Errorf("expected extension preserved, got %q", got)
	}
}

package testutil

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

// UpdateEnv names the environment variable that rewrites transcripts
// instead of comparing them.
const UpdateEnv = "GOLDEN_UPDATE"

var secondsPattern = regexp.MustCompile(`\d+\.\d{6} seconds`)

// MaskDurations replaces every "0.000123 seconds" timing with
// "N.NNNNNN seconds".
func MaskDurations(s string) string {
	return secondsPattern.ReplaceAllString(s, "N.NNNNNN seconds")
}

// Transcript compares session output, with durations masked, against
// testdata/<name>.golden and reports the first line that differs.
func Transcript(t *testing.T, name, got string) {
	t.Helper()

	got = MaskDurations(got)
	path := filepath.Join("testdata", name+".golden")

	if os.Getenv(UpdateEnv) != "" {
		if err := os.MkdirAll("testdata", 0755); err != nil {
			t.Fatalf("failed to create testdata dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(got), 0644); err != nil {
			t.Fatalf("failed to update %s: %v", path, err)
		}
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v\nGot:\n%s", path, err, got)
	}
	want := string(data)
	if got == want {
		return
	}

	wantLines := strings.Split(want, "\n")
	gotLines := strings.Split(got, "\n")
	for i := range max(len(wantLines), len(gotLines)) {
		var w, g string
		if i < len(wantLines) {
			w = wantLines[i]
		}
		if i < len(gotLines) {
			g = gotLines[i]
		}
		if w != g {
			t.Errorf("%s: line %d differs\nwant: %q\ngot:  %q\nfull output:\n%s", path, i+1, w, g, got)
			return
		}
	}
	t.Errorf("%s: output mismatch\nwant:\n%s\ngot:\n%s", path, want, got)
}

package draw

import (
	"strings"
	"testing"
)

func TestBoxPadsAndReportsOverflow(t *testing.T) {
	got := strings.Split(Box("Fields", []string{"a", "b", "c"}, 0, 20, 4), "\n")
	want := []string{
		"╭─ Fields ─── 2/3 ─╮",
		"│a                 │",
		"│b                 │",
		"╰──────────────────╯",
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("unexpected box:\n%s", strings.Join(got, "\n"))
	}
}

func TestBoxClampsOffsetAndDropsInfoWhenNarrow(t *testing.T) {
	got := strings.Split(Box("Fields", []string{"a", "b", "c"}, 9, 12, 4), "\n")
	if got[0] != "╭─ Fields ─╮" {
		t.Fatalf("unexpected top border %q", got[0])
	}
	if got[1] != "│b         │" || got[2] != "│c         │" {
		t.Fatalf("expected last two lines, got %q", got[1:3])
	}
}

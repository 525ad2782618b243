package shell

import (
	"strings"
	"testing"
)

func TestMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		id    string
		want  bool
	}{
		{"empty query matches", "", "org.gnome.Maps", true},
		{"empty query matches empty id", "", "", true},
		{"substring", "gnome", "org.gnome.Maps", true},
		{"case insensitive query", "MAPS", "org.gnome.Maps", true},
		{"case insensitive id", "maps", "ORG.GNOME.MAPS", true},
		{"no match", "firefox", "org.gnome.Maps", false},
		{"query longer than id", "org.gnome.Maps.Extra", "org.gnome.Maps", false},
		{"whitespace is literal", " maps", "org.gnome.Maps", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Matches(tt.query, tt.id); got != tt.want {
				t.Errorf("Matches(%q, %q) = %v, want %v", tt.query, tt.id, got, tt.want)
			}
		})
	}
}

func TestMatchesAgreesWithLowercaseContains(t *testing.T) {
	t.Parallel()

	ids := []string{"org.app.A", "org.app.B", "com.valvesoftware.Steam", "io.Mpv.Mpv", ""}
	queries := []string{"a", "B", "app", "STEAM", "mpv.m", "zz", "."}

	for _, id := range ids {
		for _, q := range queries {
			want := strings.Contains(strings.ToLower(id), strings.ToLower(q))
			if got := Matches(q, id); got != want {
				t.Errorf("Matches(%q, %q) = %v, want %v", q, id, got, want)
			}
		}
	}
}

func TestApplicationListFilterKeepsOrder(t *testing.T) {
	t.Parallel()

	l := newApplicationList()
	for i, id := range []string{"org.b.One", "org.a.Two", "org.b.Three"} {
		l.Append(&ApplicationRow{Index: i, ID: id})
	}

	query := "org.b"
	l.SetFilterFunc(func(r *ApplicationRow) bool { return Matches(query, r.ID) })

	got := l.VisibleRows()
	if len(got) != 2 || got[0].ID != "org.b.One" || got[1].ID != "org.b.Three" {
		t.Fatalf("VisibleRows() = %v", ids(got))
	}

	// Re-applying without a change is idempotent.
	l.InvalidateFilter()
	if again := l.VisibleRows(); len(again) != 2 || again[0] != got[0] || again[1] != got[1] {
		t.Errorf("second InvalidateFilter() changed rows: %v", ids(again))
	}

	// Rows added later are filtered too.
	l.Append(&ApplicationRow{Index: 3, ID: "org.c.Four"})
	if l.Visible(3) {
		t.Error("appended row should be filtered out")
	}

	query = ""
	l.InvalidateFilter()
	if n := len(l.VisibleRows()); n != 4 {
		t.Errorf("match-all shows %d rows, want 4", n)
	}
}

func ids(rows []*ApplicationRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}

	return out
}

package todotxt

import (
	"errors"
	"testing"
)

func TestParseFields(t *testing.T) {
	got, err := Parse("(a) Call mum +family @phone due:2021-09-20 +home")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Priority != 'A' {
		t.Fatalf("expected priority A, got %q", got.Priority.Letter())
	}
	if got.Description != "Call mum" {
		t.Fatalf("expected description %q, got %q", "Call mum", got.Description)
	}
	if len(got.Projects) != 2 || got.Projects[0] != "family" || got.Projects[1] != "home" {
		t.Fatalf("unexpected projects %v", got.Projects)
	}
	if len(got.Contexts) != 1 || got.Contexts[0] != "phone" {
		t.Fatalf("unexpected contexts %v", got.Contexts)
	}
	if got.Due != "2021-09-20" {
		t.Fatalf("expected due 2021-09-20, got %q", got.Due)
	}
	if got.IsDone() {
		t.Fatalf("expected open task")
	}
}

func TestParseCompletion(t *testing.T) {
	got := MustParse("x 2021-09-10 Water plants @garden")
	if got.Completed != "2021-09-10" {
		t.Fatalf("expected completed 2021-09-10, got %q", got.Completed)
	}
	if got.Description != "Water plants" {
		t.Fatalf("unexpected description %q", got.Description)
	}

	// "x" is only a marker at position 0.
	mid := MustParse("Fix x 2021-09-10")
	if mid.IsDone() || mid.Description != "Fix x 2021-09-10" {
		t.Fatalf("expected open task with literal x, got %+v", mid)
	}
}

func TestParseLoneCompletionMarker(t *testing.T) {
	_, err := Parse("x")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestParseEdgeCases(t *testing.T) {
	cases := []struct {
		name string
		line string
		want Task
	}{
		{name: "blank", line: "   ", want: Task{}},
		{name: "non-letter priority consumed", line: "(1) task", want: Task{Description: "task"}},
		{name: "priority anywhere", line: "task (b)", want: Task{Description: "task", Priority: 'B'}},
		{name: "whitespace collapsed", line: "a   b\tc", want: Task{Description: "a b c"}},
		{name: "done keeps pri", line: "x 2021-09-01 old pri:C", want: Task{Description: "old", Completed: "2021-09-01", Priority: 'C'}},
		{name: "long pri word is text", line: "pri:abc", want: Task{Description: "pri:abc"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.line)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if !got.Equal(tc.want) {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	lines := []string{
		"",
		"plain task",
		"(A) top +p1 @c1",
		"+p1 @c1 (z) leading tags due:2021-10-01",
		"x 2021-09-13 finished +work",
		"x 2021-09-13 finished with priority pri:B due:2021-09-01",
		"(1) bad priority stays consumed",
		"due:tomorrow literal",
		"see [docs](https://example.com/docs) @web",
	}
	for _, line := range lines {
		first := MustParse(line)
		saved := FormatForSave(first)
		second, err := Parse(saved)
		if err != nil {
			t.Fatalf("reparse %q: %v", saved, err)
		}
		if !second.Equal(first) {
			t.Fatalf("round trip of %q via %q: got %+v, want %+v", line, saved, second, first)
		}
	}
}

func TestCheckStable(t *testing.T) {
	for _, line := range []string{"plain task", "(A) x marks the spot", "x 2021-09-13 done", "extra x in the middle"} {
		if err := CheckStable(MustParse(line)); err != nil {
			t.Fatalf("CheckStable(%q): %v", line, err)
		}
	}

	unstable := []Task{
		MustParse("+p x marks the spot"),
		MustParse("@home x"),
	}
	prepended := MustParse("water plants")
	prepended.PrependText("x")
	unstable = append(unstable, prepended)

	for _, task := range unstable {
		if err := CheckStable(task); !errors.Is(err, ErrUnstableLine) {
			t.Fatalf("CheckStable(%+v) = %v, want ErrUnstableLine", task, err)
		}
	}
}

func TestFormatOrder(t *testing.T) {
	task := MustParse("@ctx +proj due:2021-09-20 do it (B)")
	if got, want := FormatForSave(task), "(B) do it due:2021-09-20 +proj @ctx"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if got, want := FormatForDisplay(task, 4), "  4 (B) do it due:2021-09-20 +proj @ctx"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if got, want := SummaryLine(task), "do it +proj @ctx"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestParseLinesReportsLine(t *testing.T) {
	_, err := ParseLines([]string{"ok", "x"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if got := err.Error(); got[:7] != "line 2:" {
		t.Fatalf("expected line number prefix, got %q", got)
	}
}

package view

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/amirbrooks/tasker-todotxt/internal/todotxt"
)

var monday = time.Date(2021, time.September, 13, 0, 0, 0, 0, time.UTC)

func mustList(t *testing.T, lines ...string) todotxt.List {
	t.Helper()
	l, err := todotxt.ParseLines(lines)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return l
}

func TestListKeepsPositions(t *testing.T) {
	open := mustList(t, "one +a", "two", "three +a")
	got := Renderer{}.List(open, []string{"+a"})
	want := "  0 one +a\n  2 three +a\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestListPriority(t *testing.T) {
	open := mustList(t, "(B) b", "none", "(A) a1", "(A) a2")
	got := Renderer{}.ListPriority(open, nil)
	want := "  2 (A) a1\n  3 (A) a2\n  0 (B) b\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNoDateAndListDone(t *testing.T) {
	open := mustList(t, "a due:2021-09-14", "b")
	if got := (Renderer{}).NoDate(open, nil); got != "  1 b\n" {
		t.Fatalf("unexpected nodate %q", got)
	}
	done := mustList(t, "x 2021-09-10 old +x", "x 2021-09-12 newer")
	if got := (Renderer{}).ListDone(done, []string{"-+x"}); got != "  1 x 2021-09-12 newer\n" {
		t.Fatalf("unexpected done %q", got)
	}
}

func TestDoneSummary(t *testing.T) {
	done := mustList(t,
		"x 2021-09-01 ancient",
		"x 2021-09-12 yesterday +work",
		"x 2021-09-13 today one",
		"x 2021-09-13 today two @home",
	)
	got, err := Renderer{}.DoneSummary(done, monday, 7, nil)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	want := "Done (7 days) - 3 completed\n\n" +
		"2021-09-13 (Mon)\n  today one\n  today two @home\n\n" +
		"2021-09-12 (Sun)\n  yesterday +work\n\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDoneSummaryMalformedDate(t *testing.T) {
	done := mustList(t, "x yesterday oops")
	_, err := Renderer{}.DoneSummary(done, monday, 7, nil)
	if !errors.Is(err, todotxt.ErrMalformedDate) {
		t.Fatalf("expected ErrMalformedDate, got %v", err)
	}
}

func TestDue(t *testing.T) {
	open := mustList(t,
		"late due:2021-09-10",
		"(B) wed due:2021-09-15",
		"(A) wed first due:2021-09-15",
		"far due:2021-12-01",
		"undated",
		"today due:2021-09-13",
	)
	got, err := Renderer{}.Due(open, monday, 7, nil)
	if err != nil {
		t.Fatalf("due: %v", err)
	}
	want := "Due (7 days) - 2021-09-13 -> 2021-09-20 - due 3, overdue 1\n\n" +
		"Overdue\n  0 late due:2021-09-10\n\n" +
		"2021-09-13 (Mon)\n  5 today due:2021-09-13\n\n" +
		"2021-09-15 (Wed)\n  2 (A) wed first due:2021-09-15\n  1 (B) wed due:2021-09-15\n\n"
	if got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}

	empty, err := Renderer{}.Due(mustList(t, "nothing"), monday, 7, nil)
	if err != nil || !strings.Contains(empty, "nothing due, nothing overdue") {
		t.Fatalf("unexpected empty due view %q %v", empty, err)
	}

	if _, err := (Renderer{}).Due(mustList(t, "task due:someday"), monday, 7, nil); !errors.Is(err, todotxt.ErrMalformedDate) {
		t.Fatalf("expected ErrMalformedDate, got %v", err)
	}
}

func TestTags(t *testing.T) {
	open := mustList(t, "a +home @phone", "b +work", "c +home +work", "d +garden")
	counts := CountTags(open, Projects)
	if len(counts) != 3 || counts[0].Tag != "home" || counts[1].Tag != "work" || counts[2].Tag != "garden" {
		t.Fatalf("unexpected counts %+v", counts)
	}
	got := Renderer{}.Tags(open, Contexts)
	if got != "4 tasks\n    1 @phone\n" {
		t.Fatalf("unexpected contexts view %q", got)
	}
}

func TestLinks(t *testing.T) {
	open := mustList(t, "plain", "read [spec](https://example.com/a) +docs", "[x](http://b) and [y](http://c)")
	got := Renderer{}.Links(open, nil)
	want := "  1 https://example.com/a\n  2 http://b\n  2 http://c\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestUntagged(t *testing.T) {
	open := mustList(t, "a +home @phone", "b +home", "c @desk", "d")
	if got, want := (Renderer{}).Untagged(open, Projects, nil), "  2 c @desk\n  3 d\n"; got != want {
		t.Fatalf("projectless: got %q, want %q", got, want)
	}
	if got, want := (Renderer{}).Untagged(open, Contexts, []string{"-d"}), "  1 b +home\n"; got != want {
		t.Fatalf("contextless: got %q, want %q", got, want)
	}
	links := CollectLinks(mustList(t, "none", "see [a](http://a)"))
	if len(links) != 1 || links[0].Position != 1 || links[0].URL != "http://a" {
		t.Fatalf("unexpected links %+v", links)
	}
}

func TestColourLineKeepsText(t *testing.T) {
	task := todotxt.MustParse("(A) urgent +work")
	plain := Renderer{}.Line(task, 0)
	coloured := Renderer{Colour: true}.Line(task, 0)
	if plain != "  0 (A) urgent +work" {
		t.Fatalf("unexpected plain line %q", plain)
	}
	if !strings.Contains(coloured, "urgent") || !strings.Contains(coloured, "+work") {
		t.Fatalf("coloured line lost text: %q", coloured)
	}
}

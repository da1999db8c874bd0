package todotxt

import "testing"

func TestMatches(t *testing.T) {
	task := MustParse("Buy Milk +Groceries @store")
	cases := []struct {
		name      string
		pos, neg  []string
		wantMatch bool
	}{
		{name: "empty filters", wantMatch: true},
		{name: "case insensitive", pos: []string{"milk"}, wantMatch: true},
		{name: "project marker", pos: []string{"+groc"}, wantMatch: true},
		{name: "context marker", pos: []string{"@store"}, wantMatch: true},
		{name: "all positives required", pos: []string{"milk", "bread"}, wantMatch: false},
		{name: "negative excludes", pos: []string{"milk"}, neg: []string{"STORE"}, wantMatch: false},
		{name: "negative absent", neg: []string{"bread"}, wantMatch: true},
		{name: "description does not bleed into tags", pos: []string{"milk+"}, wantMatch: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Matches(task, tc.pos, tc.neg); got != tc.wantMatch {
				t.Fatalf("Matches(%v, %v) = %v, want %v", tc.pos, tc.neg, got, tc.wantMatch)
			}
		})
	}
}

func TestMatchesNegationDuality(t *testing.T) {
	tasks := []Task{
		MustParse("alpha +one"),
		MustParse("beta @two"),
		MustParse("(A) gamma alpha"),
	}
	for _, term := range []string{"alpha", "+one", "@two", "zzz"} {
		for _, task := range tasks {
			pos := Matches(task, []string{term}, nil)
			neg := Matches(task, nil, []string{term})
			if pos == neg {
				t.Fatalf("term %q on %q: positive %v and negative %v should differ", term, task.Description, pos, neg)
			}
		}
	}
}

func TestSplitFilters(t *testing.T) {
	pos, neg := SplitFilters([]string{"work", "-home", "-", "", "@phone"})
	if !equalStrings(pos, []string{"work", "@phone"}) {
		t.Fatalf("unexpected positives %v", pos)
	}
	if !equalStrings(neg, []string{"home"}) {
		t.Fatalf("unexpected negatives %v", neg)
	}
}

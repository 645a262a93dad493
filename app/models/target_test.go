package models

import "testing"

func TestParseReorderTarget(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   ReorderTarget
		wantOK bool
	}{
		{name: "bare id places before", input: "20", want: ReorderTarget{TaskID: 20}, wantOK: true},
		{name: "next prefix places after", input: "next:10", want: ReorderTarget{TaskID: 10, After: true}, wantOK: true},
		{name: "surrounding space is ignored", input: " next:7 ", want: ReorderTarget{TaskID: 7, After: true}, wantOK: true},
		{name: "empty", input: "", wantOK: false},
		{name: "prefix only", input: "next:", wantOK: false},
		{name: "not a number", input: "abc", wantOK: false},
		{name: "client side temporary id", input: "next:1700000000000x", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseReorderTarget(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseReorderTarget(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ParseReorderTarget(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestReorderTargetPosition(t *testing.T) {
	if got := (ReorderTarget{TaskID: 1}).Position(5); got != 5 {
		t.Errorf("before: Position(5) = %d, want 5", got)
	}
	if got := (ReorderTarget{TaskID: 1, After: true}).Position(5); got != 6 {
		t.Errorf("after: Position(5) = %d, want 6", got)
	}
}

func TestReorderOutcomeString(t *testing.T) {
	for outcome, want := range map[ReorderOutcome]string{
		ReorderSkipped:        "skipped",
		ReorderMoved:          "moved",
		ReorderTargetNotFound: "target_not_found",
	} {
		if got := outcome.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", outcome, got, want)
		}
	}
}

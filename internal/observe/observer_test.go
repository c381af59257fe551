package observe

import (
	"strings"
	"testing"
)

func TestObserveAttributesTags(t *testing.T) {
	o := NewObserver("Alice")

	added := o.Observe("I love rock climbing and photography!")

	if !containsTag(added.PersonalityTraits, "adventurous") {
		t.Errorf("expected adventurous in traits, got %v", added.PersonalityTraits)
	}
	if !containsTag(added.PersonalityTraits, "creative") {
		t.Errorf("expected creative in traits, got %v", added.PersonalityTraits)
	}
	if !containsTag(added.Hobbies, "climbing") || !containsTag(added.Hobbies, "photography") {
		t.Errorf("expected climbing and photography in hobbies, got %v", added.Hobbies)
	}
	if !containsTag(added.CommunicationStyle, "enthusiastic") {
		t.Errorf("expected enthusiastic style, got %v", added.CommunicationStyle)
	}
}

func TestObserveMatchingIsCaseInsensitive(t *testing.T) {
	o := NewObserver("Bob")
	added := o.Observe("I LOVE GARDENING AND COOKING")

	if !containsTag(added.Hobbies, "gardening") || !containsTag(added.Hobbies, "cooking") {
		t.Errorf("expected gardening and cooking, got %v", added.Hobbies)
	}
}

func TestObserveIsStickyAndReportsOnlyNew(t *testing.T) {
	o := NewObserver("Alice")

	first := o.Observe("I went climbing last weekend")
	if !containsTag(first.Hobbies, "climbing") {
		t.Fatalf("expected climbing on first mention, got %v", first.Hobbies)
	}

	second := o.Observe("climbing again, and I bake bread on weekends")
	if containsTag(second.Hobbies, "climbing") {
		t.Errorf("climbing already known, must not be reported again: %v", second.Hobbies)
	}
	if !containsTag(second.Hobbies, "cooking") {
		t.Errorf("expected cooking via bake cue, got %v", second.Hobbies)
	}
	// "bread" carries the read cue; matching is substring based.
	if !containsTag(second.Hobbies, "reading") {
		t.Errorf("expected reading via read cue in bread, got %v", second.Hobbies)
	}

	snap := o.Snapshot()
	if got := countTag(snap.Interests, "climbing"); got != 1 {
		t.Errorf("climbing recorded %d times, want exactly once", got)
	}
}

func TestObserveNeverRemovesTags(t *testing.T) {
	o := NewObserver("Alice")
	o.Observe("I love climbing mountains")
	o.Observe("the weather was nice")
	o.Observe("nothing matching here at all xyz")

	snap := o.Snapshot()
	if !containsTag(snap.Interests, "climbing") {
		t.Errorf("tags must persist across unrelated turns, got %v", snap.Interests)
	}
}

func TestObserveHistoryOnlyGrowsOnNews(t *testing.T) {
	o := NewObserver("Alice")

	o.Observe("I enjoy photography")
	if len(o.History()) != 1 {
		t.Fatalf("expected 1 history record, got %d", len(o.History()))
	}

	o.Observe("photography photography")
	if len(o.History()) != 1 {
		t.Errorf("repeat mention must not add history, got %d records", len(o.History()))
	}
}

func TestObserveHistorySnippetTruncation(t *testing.T) {
	o := NewObserver("Alice")
	long := strings.Repeat("climbing is great and ", 10)

	o.Observe(long)

	recs := o.History()
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if !strings.HasSuffix(recs[0].Snippet, "...") {
		t.Errorf("long snippet should be truncated with ellipsis: %q", recs[0].Snippet)
	}
	if len(recs[0].Snippet) != 103 {
		t.Errorf("snippet length = %d, want 100 chars plus ellipsis", len(recs[0].Snippet))
	}
}

func TestSnapshotMapsHobbiesToInterests(t *testing.T) {
	o := NewObserver("Alice")
	o.Observe("I brew my own coffee")

	snap := o.Snapshot()
	if !containsTag(snap.Interests, "coffee") {
		t.Errorf("observed hobbies should surface as interests, got %v", snap.Interests)
	}
}

func TestSummary(t *testing.T) {
	o := NewObserver("Alice")
	if got := o.Summary(); got != "No specific traits observed for Alice yet." {
		t.Errorf("empty summary = %q", got)
	}

	o.Observe("I love climbing!")
	got := o.Summary()
	if !strings.HasPrefix(got, "Alice appears to be: ") {
		t.Errorf("summary prefix wrong: %q", got)
	}
	if !strings.Contains(got, "Interests: climbing") {
		t.Errorf("summary missing interests: %q", got)
	}
}

func TestReset(t *testing.T) {
	o := NewObserver("Alice")
	o.Observe("I love climbing!")
	o.Reset()

	snap := o.Snapshot()
	if len(snap.PersonalityTraits) != 0 || len(snap.Interests) != 0 || len(snap.CommunicationStyle) != 0 {
		t.Errorf("reset should clear all observations, got %+v", snap)
	}
	if len(o.History()) != 0 {
		t.Errorf("reset should clear history")
	}
}

func TestScanIsStateless(t *testing.T) {
	first := Scan("I love climbing and photography")
	second := Scan("I love climbing and photography")

	if len(first.Hobbies) != len(second.Hobbies) {
		t.Errorf("scan must not remember earlier calls: %v vs %v", first.Hobbies, second.Hobbies)
	}
}

func containsTag(list []string, tag string) bool {
	for _, v := range list {
		if v == tag {
			return true
		}
	}
	return false
}

func countTag(list []string, tag string) int {
	n := 0
	for _, v := range list {
		if v == tag {
			n++
		}
	}
	return n
}

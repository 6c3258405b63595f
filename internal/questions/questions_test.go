package questions

import "testing"

func TestListIsFixedAndOrdered(t *testing.T) {
	qs := List()
	if len(qs) != 4 {
		t.Fatalf("expected 4 questions, got %d", len(qs))
	}
	if qs[0].Title != "Self-Introduction" {
		t.Fatalf("unexpected first question: %q", qs[0].Title)
	}
	if qs[0].Tip == "" {
		t.Fatal("first question should carry a tip")
	}
	if qs[1].Tip != "" {
		t.Fatal("second question should not carry a tip")
	}
}

func TestNavigatorClampsWithoutWraparound(t *testing.T) {
	nav := NewNavigator()

	nav.Previous()
	if nav.Index() != 0 {
		t.Fatalf("expected index pinned at 0, got %d", nav.Index())
	}

	for i := 0; i < 10; i++ {
		nav.Next()
	}
	if nav.Index() != nav.Len()-1 {
		t.Fatalf("expected index pinned at %d, got %d", nav.Len()-1, nav.Index())
	}

	nav.Previous()
	if nav.Index() != nav.Len()-2 {
		t.Fatalf("expected index %d, got %d", nav.Len()-2, nav.Index())
	}
}

package schema

import "testing"

func TestFieldIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, id := range FieldIDs() {
		if seen[id] {
			t.Fatalf("duplicate field id %q", id)
		}
		seen[id] = true
	}
}

func TestUserFieldCount(t *testing.T) {
	if got := UserFieldCount(); got != 22 {
		t.Errorf("UserFieldCount = %d, want 22", got)
	}
	if got := len(FieldIDs()); got != 22 {
		t.Errorf("len(FieldIDs) = %d, want 22", got)
	}
}

func TestAutoSectionSlots(t *testing.T) {
	if got := AutoSectionSlots(); got != 6 {
		t.Errorf("AutoSectionSlots = %d, want 6", got)
	}
	nums := AutoSectionNumbers()
	if len(nums) != 6 {
		t.Fatalf("AutoSectionNumbers has %d entries, want 6", len(nums))
	}
	for i, n := range nums {
		if n != 8+i {
			t.Errorf("auto section %d numbered %d, want %d", i, n, 8+i)
		}
	}
}

func TestEveryFieldBelongsToOneSection(t *testing.T) {
	for _, s := range UserSections() {
		for _, f := range s.Fields {
			if got := SectionOf(f.ID); got != s.Number {
				t.Errorf("SectionOf(%q) = %d, want %d", f.ID, got, s.Number)
			}
		}
	}
}

func TestSectionNumbersAreSequential(t *testing.T) {
	for i, s := range Sections() {
		if s.Number != i+1 {
			t.Errorf("section %d numbered %d, want %d", i, s.Number, i+1)
		}
	}
}

func TestAutoSectionsHaveNoFields(t *testing.T) {
	for _, s := range Sections() {
		if s.Kind == KindAuto && len(s.Fields) != 0 {
			t.Errorf("auto section %d has %d fields", s.Number, len(s.Fields))
		}
	}
}

func TestIsKnownField(t *testing.T) {
	if !IsKnownField("privacyByDesign") {
		t.Error("privacyByDesign should be a known field")
	}
	if IsKnownField("notAField") {
		t.Error("notAField should not be known")
	}
}

package villains

import "testing"

func testCatalog() []Villain {
	return []Villain{
		{ID: "a", Name: "Alpha Fiend", Universe: "U1", FirstAppearanceYear: 1990},
		{ID: "b", Name: "Beta Fiend", Universe: "U2", FirstAppearanceYear: 2000},
		{ID: "c", Name: "Gamma", Universe: "U3", FirstAppearanceYear: 2010},
	}
}

func TestLoadValidation(t *testing.T) {
	cases := []struct {
		name string
		list []Villain
	}{
		{"empty catalog", nil},
		{"missing id", []Villain{{Name: "X"}}},
		{"duplicate id", []Villain{{ID: "a", Name: "X"}, {ID: "a", Name: "Y"}}},
		{"missing name", []Villain{{ID: "a"}}},
		{"duplicate name case-insensitive", []Villain{{ID: "a", Name: "Foo"}, {ID: "b", Name: "foo"}}},
	}
	for _, tc := range cases {
		if err := Load(tc.list); err == nil {
			t.Errorf("Load(%s): expected error, got nil", tc.name)
		}
	}
}

func TestInitEmbeddedCatalog(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if Count() == 0 {
		t.Fatalf("embedded catalog is empty")
	}
	for _, v := range All() {
		if v.ID == "" || v.Name == "" || v.FirstAppearanceYear == 0 {
			t.Errorf("catalog entry %+v incomplete", v)
		}
	}
}

func TestByName(t *testing.T) {
	if err := Load(testCatalog()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	for _, q := range []string{"Alpha Fiend", "alpha fiend", "ALPHA FIEND", "  Alpha Fiend  "} {
		v, ok := ByName(q)
		if !ok {
			t.Fatalf("ByName(%q) not found", q)
		}
		if v.ID != "a" {
			t.Fatalf("ByName(%q) = %q, want a", q, v.ID)
		}
	}
	if _, ok := ByName("nobody"); ok {
		t.Fatalf("ByName(nobody) should not resolve")
	}
}

func TestFilterPrefix(t *testing.T) {
	if err := Load(testCatalog()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	got := FilterPrefix("aL")
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("FilterPrefix(aL) = %+v, want [a]", got)
	}
	if n := len(FilterPrefix("")); n != 3 {
		t.Fatalf("FilterPrefix(\"\") returned %d entries, want 3", n)
	}
	if n := len(FilterPrefix("zzz")); n != 0 {
		t.Fatalf("FilterPrefix(zzz) returned %d entries, want 0", n)
	}
}

func TestAllReturnsCopy(t *testing.T) {
	if err := Load(testCatalog()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	first := All()
	first[0].Name = "Mutated"
	if again := All(); again[0].Name != "Alpha Fiend" {
		t.Fatalf("catalog mutated through All(): %q", again[0].Name)
	}
}

package price

import "testing"

func TestParse_Valid(t *testing.T) {
	cases := []struct {
		raw    string
		amount string
	}{
		{"45", "45"},
		{"45₺", "45"},
		{" 45 ", "45"},
		{"45.5", "45.5"},
		{"45,50", "45,50"},
		{"0", "0"},
		{"120,25₺", "120,25"},
	}
	for _, c := range cases {
		v, err := Parse(c.raw)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", c.raw, err)
			continue
		}
		if v.Amount() != c.amount {
			t.Errorf("Parse(%q).Amount() = %q, want %q", c.raw, v.Amount(), c.amount)
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"₺",
		"-45",
		"abc",
		"45a",
		"4.5.6",
		"4,5.6",
		".5",
		"5.",
		",",
		"45 50",
	}
	for _, raw := range cases {
		if _, err := Parse(raw); err == nil {
			t.Errorf("Parse(%q) error = nil, want ErrInvalidAmount", raw)
		}
	}
}

func TestFormat_SingleSuffix(t *testing.T) {
	v, err := Parse("45")
	if err != nil {
		t.Fatalf("Parse(45) error = %v", err)
	}
	if got := v.Format(); got != "45"+Suffix {
		t.Errorf("Format() = %q, want %q", got, "45"+Suffix)
	}

	// Edit→save döngüsü: saklanan metin tekrar Parse'tan geçse de sonek
	// hiçbir zaman ikilenmez.
	for i := 0; i < 3; i++ {
		v2, err := Parse(v.Format())
		if err != nil {
			t.Fatalf("re-Parse error = %v", err)
		}
		v = v2
	}
	if got := v.Format(); got != "45"+Suffix {
		t.Errorf("after cycles Format() = %q, want %q", got, "45"+Suffix)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, raw := range []string{"45", "45,5", "0", "999.99"} {
		v, err := Parse(raw)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", raw, err)
		}
		back, err := Parse(v.Format())
		if err != nil {
			t.Fatalf("Parse(Format(%q)) error = %v", raw, err)
		}
		if back != v {
			t.Errorf("round trip of %q: got %v, want %v", raw, back, v)
		}
	}
}

//-------------------------------------------------------------------------
//
// LootBox Admin
//
// Portions copyright (c) 2025 - 2026, LootBox
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"regexp"
	"testing"
	"time"
)

var anchor = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestNewFakerAtAnchorsDates(t *testing.T) {
	f := NewFakerAt(1, anchor.Add(750*time.Millisecond))
	if f.faker == nil {
		t.Fatal("faker field is nil")
	}
	if !f.Now().Equal(anchor) {
		t.Errorf("Expected anchor %v, got %v", anchor, f.Now())
	}
}

func TestNewFakerAtIsReproducible(t *testing.T) {
	f1 := NewFakerAt(42, anchor)
	f2 := NewFakerAt(42, anchor)

	for i := 0; i < 10; i++ {
		if a, b := f1.RecentDate(365), f2.RecentDate(365); !a.Equal(b) {
			t.Errorf("Same seed produced different dates: %v != %v", a, b)
		}
		if a, b := f1.Int(0, 1000), f2.Int(0, 1000); a != b {
			t.Errorf("Same seed produced different values: %d != %d", a, b)
		}
		if a, b := f1.LastName(), f2.LastName(); a != b {
			t.Errorf("Same seed produced different names: %s != %s", a, b)
		}
	}
}

func TestFakerNames(t *testing.T) {
	f := NewFakerAt(1, anchor)
	if f.FirstName() == "" {
		t.Error("FirstName returned empty string")
	}
	if f.LastName() == "" {
		t.Error("LastName returned empty string")
	}
	if f.Name() == "" {
		t.Error("Name returned empty string")
	}
}

func TestFakerEmail(t *testing.T) {
	f := NewFakerAt(1, anchor)
	email := f.Email()
	if email == "" {
		t.Error("Email returned empty string")
	}
	if !regexp.MustCompile(`@`).MatchString(email) {
		t.Errorf("Email should contain @, got: %s", email)
	}
}

func TestFakerPhone(t *testing.T) {
	f := NewFakerAt(1, anchor)
	re := regexp.MustCompile(`^\+\d{1,2}-\d{8,9}$`)
	for i := 0; i < 20; i++ {
		if phone := f.Phone(); !re.MatchString(phone) {
			t.Errorf("Phone has unexpected format: %s", phone)
		}
	}
}

func TestFakerAddress(t *testing.T) {
	f := NewFakerAt(1, anchor)
	if f.Address() == "" {
		t.Error("Address returned empty string")
	}
	if f.Street() == "" {
		t.Error("Street returned empty string")
	}
}

func TestFakerSentence(t *testing.T) {
	f := NewFakerAt(1, anchor)
	if f.Sentence(8) == "" {
		t.Error("Sentence returned empty string")
	}
}

func TestFakerPrice(t *testing.T) {
	f := NewFakerAt(1, anchor)
	for i := 0; i < 50; i++ {
		p := f.Price(10, 800)
		if p.LessThan(decimalFrom(10)) || p.GreaterThan(decimalFrom(800)) {
			t.Errorf("Price out of range: %s", p)
		}
		if p.Exponent() < -2 {
			t.Errorf("Price should have at most two decimals: %s", p)
		}
	}
}

func TestFakerRecentDate(t *testing.T) {
	f := NewFakerAt(7, anchor)
	start := anchor.AddDate(0, 0, -365)
	for i := 0; i < 50; i++ {
		d := f.RecentDate(365)
		if d.Before(start) || d.After(anchor) {
			t.Errorf("RecentDate out of range: %v", d)
		}
	}
	if !f.Now().Equal(anchor) {
		t.Errorf("Now should return the anchor, got %v", f.Now())
	}
}

func TestFakerDateRange(t *testing.T) {
	f := NewFakerAt(1, anchor)
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC)

	d := f.DateRange(start, end)
	if d.Before(start) || d.After(end) {
		t.Errorf("DateRange returned date out of range: %v", d)
	}
}

func TestFakerInt(t *testing.T) {
	f := NewFakerAt(1, anchor)
	for i := 0; i < 100; i++ {
		v := f.Int(10, 20)
		if v < 10 || v > 20 {
			t.Errorf("Int(10, 20) returned out of range: %d", v)
		}
	}
}

func TestFakerBool(t *testing.T) {
	f := NewFakerAt(1, anchor)
	trueCount, falseCount := 0, 0
	for i := 0; i < 100; i++ {
		if f.Bool() {
			trueCount++
		} else {
			falseCount++
		}
	}
	if trueCount == 0 || falseCount == 0 {
		t.Errorf("Bool should return both values, got true=%d false=%d", trueCount, falseCount)
	}
}

func TestChoose(t *testing.T) {
	f := NewFakerAt(1, anchor)
	items := []string{"a", "b", "c", "d", "e"}

	for i := 0; i < 100; i++ {
		chosen := Choose(f, items)
		found := false
		for _, item := range items {
			if item == chosen {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Choose returned item not in slice: %s", chosen)
		}
	}
}

func TestChooseEmpty(t *testing.T) {
	f := NewFakerAt(1, anchor)
	var items []string

	chosen := Choose(f, items)
	if chosen != "" {
		t.Errorf("Choose on empty slice should return zero value, got: %s", chosen)
	}
}

func TestChooseWeighted(t *testing.T) {
	f := NewFakerAt(1, anchor)
	items := []string{"a", "b", "c"}
	weights := []int{1, 2, 7} // c should be chosen ~70% of the time

	counts := make(map[string]int)
	for i := 0; i < 1000; i++ {
		counts[ChooseWeighted(f, items, weights)]++
	}

	// c should be most common
	if counts["c"] < counts["a"] || counts["c"] < counts["b"] {
		t.Errorf("Weighted choice distribution unexpected: %v", counts)
	}
}

func TestChooseWeightedEmpty(t *testing.T) {
	f := NewFakerAt(1, anchor)
	chosen := ChooseWeighted(f, []string(nil), nil)
	if chosen != "" {
		t.Errorf("ChooseWeighted on empty slices should return zero value, got: %s", chosen)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"hello", 10, "hello"},
		{"hello world", 5, "hello"},
		{"Québec", 4, "Québ"},
		{"", 5, ""},
	}

	for _, tt := range tests {
		if got := Truncate(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}

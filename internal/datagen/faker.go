//-------------------------------------------------------------------------
//
// LootBox Admin
//
// Portions copyright (c) 2025 - 2026, LootBox
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package datagen provides data generation utilities.
package datagen

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

// Faker provides fake data generation using gofakeit.
type Faker struct {
	faker *gofakeit.Faker
	now   time.Time
}

// NewFakerAt creates a seeded Faker whose relative dates are anchored at now.
// The same seed and anchor always produce the same sequence.
func NewFakerAt(seed uint64, now time.Time) *Faker {
	return &Faker{
		faker: gofakeit.New(seed),
		now:   now.UTC().Truncate(time.Second),
	}
}

// Now returns the anchor used for relative dates.
func (f *Faker) Now() time.Time {
	return f.now
}

// FirstName generates a random first name.
func (f *Faker) FirstName() string {
	return f.faker.FirstName()
}

// LastName generates a random last name.
func (f *Faker) LastName() string {
	return f.faker.LastName()
}

// Name generates a random full name.
func (f *Faker) Name() string {
	return f.faker.Name()
}

// Email generates a random email address.
func (f *Faker) Email() string {
	return f.faker.Email()
}

// Phone generates an international style phone number.
func (f *Faker) Phone() string {
	return fmt.Sprintf("+%d-%d", f.Int(1, 99), f.Int(10000000, 999999999))
}

// Street generates a random street address.
func (f *Faker) Street() string {
	return f.faker.Street()
}

// Address generates a single line postal address.
func (f *Faker) Address() string {
	a := f.faker.Address()
	return fmt.Sprintf("%s, %s, %s", a.Street, a.City, a.Zip)
}

// Sentence generates a random sentence.
func (f *Faker) Sentence(wordCount int) string {
	return f.faker.Sentence(wordCount)
}

// Price generates a two-decimal amount between min and max.
func (f *Faker) Price(min, max float64) decimal.Decimal {
	return decimal.NewFromFloat(f.faker.Float64Range(min, max)).Round(2)
}

// DateRange generates a random time within a range.
func (f *Faker) DateRange(start, end time.Time) time.Time {
	return f.faker.DateRange(start, end).UTC().Truncate(time.Second)
}

// RecentDate generates a random time within the last days days.
func (f *Faker) RecentDate(days int) time.Time {
	return f.DateRange(f.now.AddDate(0, 0, -days), f.now)
}

// Int generates a random integer between min and max (inclusive).
func (f *Faker) Int(min, max int) int {
	return f.faker.IntRange(min, max)
}

// Bool generates a random boolean.
func (f *Faker) Bool() bool {
	return f.faker.Bool()
}

// Choose returns a random element from the given slice.
func Choose[T any](f *Faker, items []T) T {
	if len(items) == 0 {
		var zero T
		return zero
	}
	return items[f.Int(0, len(items)-1)]
}

// ChooseWeighted returns a random element based on weights.
func ChooseWeighted[T any](f *Faker, items []T, weights []int) T {
	if len(items) == 0 || len(weights) == 0 {
		var zero T
		return zero
	}

	totalWeight := 0
	for _, w := range weights {
		totalWeight += w
	}

	r := f.Int(1, totalWeight)
	cumulative := 0
	for i, w := range weights {
		cumulative += w
		if r <= cumulative {
			return items[i]
		}
	}

	return items[len(items)-1]
}

// Truncate truncates a string to max runes if needed.
func Truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) > maxLen {
		return string(r[:maxLen])
	}
	return s
}

//-------------------------------------------------------------------------
//
// defectaudit - Inventory Defect Analysis
//
// Copyright (c) 2026, the defectaudit authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package datagen provides synthetic transaction generation.
package datagen

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// Faker provides seeded fake data generation using gofakeit. Every draw
// goes through the one underlying source, so a given seed reproduces the
// full dataset bit for bit. The source is always passed explicitly; there
// is no ambient process-wide seed.
type Faker struct {
	faker *gofakeit.Faker
}

// NewFaker creates a new Faker with a time-based seed.
func NewFaker() *Faker {
	return &Faker{
		faker: gofakeit.New(uint64(time.Now().UnixNano())),
	}
}

// NewFakerWithSeed creates a new Faker with a specific seed for
// reproducibility.
func NewFakerWithSeed(seed uint64) *Faker {
	return &Faker{
		faker: gofakeit.New(seed),
	}
}

// Int generates a random integer between min and max (inclusive).
func (f *Faker) Int(min, max int) int {
	return f.faker.IntRange(min, max)
}

// Float64 generates a random float64 between min and max.
func (f *Faker) Float64(min, max float64) float64 {
	return f.faker.Float64Range(min, max)
}

// Bool generates a random boolean.
func (f *Faker) Bool() bool {
	return f.faker.Bool()
}

// Probability returns true with probability p (0.0 to 1.0).
func (f *Faker) Probability(p float64) bool {
	return f.faker.Float64Range(0, 1) < p
}

// DateRange generates a random date within a range.
func (f *Faker) DateRange(start, end time.Time) time.Time {
	return f.faker.DateRange(start, end)
}

// SKU generates a stock keeping unit code in the SKU-1000..SKU-9999 range.
func (f *Faker) SKU() string {
	return fmt.Sprintf("SKU-%d", f.Int(1000, 9999))
}

// OperatorID generates an operator identifier OP-001..OP-<count>.
func (f *Faker) OperatorID(count int) string {
	return fmt.Sprintf("OP-%03d", f.Int(1, count))
}

// BinLocation generates a compound aisle/bin location string.
func (f *Faker) BinLocation(aisles, bins int) string {
	return fmt.Sprintf("Aisle-%d-Bin-%d", f.Int(1, aisles), f.Int(1, bins))
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

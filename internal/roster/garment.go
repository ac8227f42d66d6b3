package roster

import (
	"errors"
	"math"
	"strings"

	"tailorshop/internal/model"
)

var (
	// ErrDuplicateType the garment type is already priced for this worker
	ErrDuplicateType = errors.New("garment type already has a rate")
	// ErrInvalidRate the rate is not a positive finite number
	ErrInvalidRate = errors.New("rate must be a positive number")
	// ErrEmptyType the draft has no garment type
	ErrEmptyType = errors.New("garment type is required")
)

// AddGarmentRate appends draft to rates and returns the new list.
// rates is never modified; on error the caller keeps using it unchanged.
func AddGarmentRate(draft model.GarmentRate, rates []model.GarmentRate) ([]model.GarmentRate, error) {
	garment := strings.TrimSpace(draft.GarmentType)
	if garment == "" {
		return rates, ErrEmptyType
	}
	if !(draft.Rate > 0) || math.IsInf(draft.Rate, 0) {
		return rates, ErrInvalidRate
	}
	if indexOfType(rates, garment) >= 0 {
		return rates, ErrDuplicateType
	}

	out := make([]model.GarmentRate, 0, len(rates)+1)
	out = append(out, rates...)
	out = append(out, model.GarmentRate{GarmentType: garment, Rate: draft.Rate})
	return out, nil
}

// RemoveGarmentRate returns rates without the entry for garmentType; absent types are a no-op
func RemoveGarmentRate(garmentType string, rates []model.GarmentRate) []model.GarmentRate {
	i := indexOfType(rates, garmentType)
	if i < 0 {
		return append([]model.GarmentRate(nil), rates...)
	}
	out := make([]model.GarmentRate, 0, len(rates)-1)
	out = append(out, rates[:i]...)
	return append(out, rates[i+1:]...)
}

// ValidateGarmentRates checks a complete list against the per-worker invariants
func ValidateGarmentRates(rates []model.GarmentRate) error {
	var checked []model.GarmentRate
	for _, r := range rates {
		next, err := AddGarmentRate(r, checked)
		if err != nil {
			return err
		}
		checked = next
	}
	return nil
}

// Garment types compare case-insensitively, ignoring surrounding whitespace
func indexOfType(rates []model.GarmentRate, garmentType string) int {
	want := strings.TrimSpace(garmentType)
	for i, r := range rates {
		if strings.EqualFold(strings.TrimSpace(r.GarmentType), want) {
			return i
		}
	}
	return -1
}

// Package catalog - Catalog validation
// Ensures every registered profile honours the region invariants.
package catalog

import (
	"fmt"

	"mileage/core/types"
)

// ValidationRule is a catalog validation rule
type ValidationRule func(types.Profile) error

// DefaultValidationRules returns the standard validation rules
func DefaultValidationRules() []ValidationRule {
	return []ValidationRule{
		validateProfileShape,
		validateDisplayLabels,
		validateImperialPairing,
	}
}

// Validate checks a catalog against validation rules
func (c *Catalog) Validate(rules []ValidationRule) []error {
	var errors []error

	for _, code := range c.Codes() {
		entry := c.entries[code]
		for _, rule := range rules {
			if err := rule(entry); err != nil {
				errors = append(errors, fmt.Errorf("%s: %w", code, err))
			}
		}
	}

	return errors
}

// validateProfileShape checks units and threshold ordering
func validateProfileShape(p types.Profile) error {
	return p.Validate()
}

// validateDisplayLabels ensures the labels the result view needs are present
func validateDisplayLabels(p types.Profile) error {
	if p.Currency == "" {
		return fmt.Errorf("currency symbol is required")
	}
	if p.CostPerDistanceUnit == "" {
		return fmt.Errorf("cost per distance label is required")
	}
	return nil
}

// validateImperialPairing rejects l/100km profiles measured in miles,
// whose efficiency formula assumes metric distance
func validateImperialPairing(p types.Profile) error {
	if p.EfficiencyUnit == types.EfficiencyLitersPer100Km && p.DistanceUnit == types.DistanceMiles {
		return fmt.Errorf("l/100km requires km distances")
	}
	return nil
}

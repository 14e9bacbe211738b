package valueobject

import (
	"github.com/zakat-manager/backend/internal/domain/entity"
)

// JewelryPolicy selects how personal gold and silver jewelry is treated.
type JewelryPolicy string

const (
	// JewelryPolicyInclude counts all gold and silver, including worn jewelry.
	JewelryPolicyInclude JewelryPolicy = "include"
	// JewelryPolicyExemptPersonal excludes gold and silver tagged for personal use.
	JewelryPolicyExemptPersonal JewelryPolicy = "exempt_personal"
)

// IsValid reports whether the policy is known.
func (p JewelryPolicy) IsValid() bool {
	return p == JewelryPolicyInclude || p == JewelryPolicyExemptPersonal
}

// DefaultHawlDays is one lunar year.
const DefaultHawlDays = 354

// CalculationPolicy is the configurable interpretation applied by the classifier
// and the engine.
type CalculationPolicy struct {
	NisabStandard     entity.NisabStandard
	Jewelry           JewelryPolicy
	EnforceHawl       bool
	HawlDays          int
	PersonalUseExempt map[entity.AssetCategory]bool
}

// DefaultCalculationPolicy returns the precautionary majority-view policy:
// silver Nisab, jewelry included, Hawl not enforced, personal property and other
// possessions exempt.
func DefaultCalculationPolicy() CalculationPolicy {
	return CalculationPolicy{
		NisabStandard: entity.NisabStandardSilver,
		Jewelry:       JewelryPolicyInclude,
		EnforceHawl:   false,
		HawlDays:      DefaultHawlDays,
		PersonalUseExempt: map[entity.AssetCategory]bool{
			entity.AssetCategoryProperty: true,
			entity.AssetCategoryOther:    true,
		},
	}
}

// NewCalculationPolicy builds a policy from configuration values.
// Unknown values fall back to the defaults.
func NewCalculationPolicy(standard, jewelry string, enforceHawl bool, hawlDays int, exempt []string) CalculationPolicy {
	policy := DefaultCalculationPolicy()

	if s := entity.NisabStandard(standard); s.IsValid() {
		policy.NisabStandard = s
	}
	if j := JewelryPolicy(jewelry); j.IsValid() {
		policy.Jewelry = j
	}
	policy.EnforceHawl = enforceHawl
	if hawlDays > 0 {
		policy.HawlDays = hawlDays
	}
	if exempt != nil {
		policy.PersonalUseExempt = make(map[entity.AssetCategory]bool, len(exempt))
		for _, c := range exempt {
			if category := entity.AssetCategory(c); category.IsValid() {
				policy.PersonalUseExempt[category] = true
			}
		}
	}

	return policy
}

// WithStandard returns a copy of the policy using another Nisab standard.
func (p CalculationPolicy) WithStandard(standard entity.NisabStandard) CalculationPolicy {
	if standard.IsValid() {
		p.NisabStandard = standard
	}
	return p
}

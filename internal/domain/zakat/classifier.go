package zakat

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zakat-manager/backend/internal/domain/entity"
	"github.com/zakat-manager/backend/internal/domain/valueobject"
)

// Classification is the eligibility decision for one asset.
type Classification struct {
	Eligible bool
	Reason   entity.EligibilityReason
}

// Classifier decides which assets count toward the Zakat base under a policy.
type Classifier struct {
	policy valueobject.CalculationPolicy
}

// NewClassifier creates a classifier for a policy.
func NewClassifier(policy valueobject.CalculationPolicy) *Classifier {
	return &Classifier{policy: policy}
}

// Classify returns whether the asset is eligible as of the given date and why.
//
// Checks run in order: personal-use exemption for non-metal categories, the jewelry
// policy for metals, then the holding period when it is enforced.
func (c *Classifier) Classify(asset *entity.Asset, asOf time.Time) Classification {
	personal := asset.Usage == entity.AssetUsagePersonal

	if asset.Category.IsMetal() {
		if personal && c.policy.Jewelry == valueobject.JewelryPolicyExemptPersonal {
			return Classification{Eligible: false, Reason: entity.ReasonJewelryExempt}
		}
	} else if personal && c.policy.PersonalUseExempt[asset.Category] {
		return Classification{Eligible: false, Reason: entity.ReasonPersonalUseExempt}
	}

	if c.policy.EnforceHawl && !c.hawlMet(asset, asOf) {
		return Classification{Eligible: false, Reason: entity.ReasonHawlNotMet}
	}

	return Classification{Eligible: true, Reason: entity.ReasonIncluded}
}

// IsEligible reports whether the asset counts toward the Zakat base.
func (c *Classifier) IsEligible(asset *entity.Asset, asOf time.Time) bool {
	return c.Classify(asset, asOf).Eligible
}

// ZakatableValue returns the normalized value when the asset is eligible, else zero.
func (c *Classifier) ZakatableValue(asset *entity.Asset, normalized decimal.Decimal, asOf time.Time) decimal.Decimal {
	if !c.IsEligible(asset, asOf) {
		return decimal.Zero
	}
	return normalized
}

// hawlMet treats an asset without an acquisition date as held for the full year.
func (c *Classifier) hawlMet(asset *entity.Asset, asOf time.Time) bool {
	if asset.AcquisitionDate == nil {
		return true
	}
	days := c.policy.HawlDays
	if days <= 0 {
		days = valueobject.DefaultHawlDays
	}
	return !asOf.Before(asset.AcquisitionDate.AddDate(0, 0, days))
}

package zakat

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zakat-manager/backend/internal/domain/entity"
	domainerror "github.com/zakat-manager/backend/internal/domain/error"
	"github.com/zakat-manager/backend/internal/domain/valueobject"
)

// CalculationInput holds the snapshots a calculation runs against.
type CalculationInput struct {
	UserID      uuid.UUID
	Assets      []*entity.Asset
	Prices      entity.PriceSnapshot
	Rates       *entity.ExchangeRateTable
	Currency    string
	Standard    entity.NisabStandard // empty selects the policy default
	Liabilities []entity.Liability
	AsOf        time.Time
	Notes       string
}

// Engine aggregates normalized assets into a Zakat obligation.
type Engine struct {
	policy     valueobject.CalculationPolicy
	classifier *Classifier
}

// NewEngine creates an engine for a policy.
func NewEngine(policy valueobject.CalculationPolicy) *Engine {
	return &Engine{
		policy:     policy,
		classifier: NewClassifier(policy),
	}
}

// Policy returns the policy the engine applies.
func (e *Engine) Policy() valueobject.CalculationPolicy {
	return e.policy
}

// ComputeZakat runs a calculation over ad hoc snapshots as of now.
func (e *Engine) ComputeZakat(assets []*entity.Asset, prices entity.PriceSnapshot, rates *entity.ExchangeRateTable, currency string, standard entity.NisabStandard) (*entity.ZakatCalculation, error) {
	return e.Calculate(CalculationInput{
		Assets:   assets,
		Prices:   prices,
		Rates:    rates,
		Currency: currency,
		Standard: standard,
	})
}

// Calculate normalizes, classifies and aggregates the assets of the input.
//
// A failure to value a single asset degrades that asset to zero with a warning.
// A missing rate table, an unconvertible result currency or a missing Nisab price
// fail the whole calculation.
func (e *Engine) Calculate(input CalculationInput) (*entity.ZakatCalculation, error) {
	asOf := input.AsOf
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}

	if input.Rates.IsEmpty() {
		return nil, domainerror.NewCalculationError(
			domainerror.ErrCodeRateTableMissing,
			"no currency data available",
			domainerror.ErrRateTableMissing,
		)
	}
	conv := NewConverter(input.Rates)

	currency := NormalizeCurrency(input.Currency)
	if currency == "" {
		return nil, domainerror.NewCalculationError(
			domainerror.ErrCodeInvalidResultCurrency,
			"result currency is required",
			domainerror.ErrResultCurrencyUnsupported,
		)
	}
	if !conv.Supports(currency) {
		return nil, domainerror.NewCalculationError(
			domainerror.ErrCodeResultCurrencyUnsupported,
			"result currency "+currency+" is not supported",
			domainerror.ErrResultCurrencyUnsupported,
		)
	}

	standard := input.Standard
	if standard == "" {
		standard = e.policy.NisabStandard
	}
	if !standard.IsValid() {
		return nil, domainerror.NewCalculationError(
			domainerror.ErrCodeInvalidNisabStandard,
			"nisab standard must be gold or silver",
			domainerror.ErrInvalidNisabStandard,
		)
	}

	quote, ok := input.Prices.Quote(standard.Metal())
	if !ok {
		return nil, domainerror.NewCalculationError(
			domainerror.ErrCodeNisabPriceMissing,
			"no "+string(standard.Metal())+" price available for nisab",
			domainerror.ErrNisabPriceMissing,
		)
	}
	nisab, err := conv.NisabValue(standard, quote, currency)
	if err != nil {
		var calcErr *domainerror.CalculationError
		if errors.As(err, &calcErr) {
			return nil, err
		}
		return nil, domainerror.NewCalculationError(
			domainerror.ErrCodeNisabPriceMissing,
			"nisab price could not be converted",
			err,
		)
	}

	liabilities, err := e.sumLiabilities(conv, input.Liabilities, currency)
	if err != nil {
		return nil, err
	}

	calc := &entity.ZakatCalculation{
		UserID:          input.UserID,
		Currency:        currency,
		NisabStandard:   standard,
		AssetBreakdown:  make([]entity.BreakdownEntry, 0, len(input.Assets)),
		Warnings:        make([]entity.CalculationWarning, 0),
		Notes:           input.Notes,
		CalculationDate: asOf,
	}

	total := decimal.Zero
	eligible := decimal.Zero
	for _, asset := range input.Assets {
		value, warning := e.normalize(conv, asset, input.Prices, currency)
		class := e.classifier.Classify(asset, asOf)

		entry := entity.BreakdownEntry{
			AssetID:     asset.ID,
			Category:    asset.Category,
			Name:        asset.Name,
			Value:       value,
			Eligible:    class.Eligible,
			Reason:      class.Reason,
			ZakatAmount: decimal.Zero,
			Warning:     warning,
		}
		calc.AssetBreakdown = append(calc.AssetBreakdown, entry)
		if warning != nil {
			calc.Warnings = append(calc.Warnings, *warning)
		}

		total = total.Add(value)
		if class.Eligible {
			eligible = eligible.Add(value)
		}
	}

	net := eligible.Sub(liabilities)
	if net.IsNegative() {
		net = decimal.Zero
	}

	calc.TotalAssetsValue = total
	calc.EligibleAssetsValue = eligible
	calc.LiabilitiesValue = liabilities
	calc.NetZakatableValue = net
	calc.NisabThresholdValue = nisab.Value
	calc.MeetsNisab = net.IsPositive() && net.GreaterThanOrEqual(nisab.Value)
	calc.ZakatAmount = decimal.Zero
	if calc.MeetsNisab {
		calc.ZakatAmount = RoundMoney(net.Mul(valueobject.ZakatRate))
		allocate(calc.AssetBreakdown, calc.ZakatAmount, eligible, net)
	}

	return calc, nil
}

// normalize values one asset in the result currency. Values are rounded to cents.
func (e *Engine) normalize(conv *Converter, asset *entity.Asset, prices entity.PriceSnapshot, currency string) (decimal.Decimal, *entity.CalculationWarning) {
	switch holding := asset.Holding.(type) {
	case entity.MetalHolding:
		metal, ok := asset.Category.Metal()
		if !ok {
			return decimal.Zero, newWarning(asset, entity.WarningInvalidHolding, "metal holding on a non-metal category")
		}
		quote, ok := prices.Quote(metal)
		if !ok || !quote.PricePerGram.IsPositive() {
			return decimal.Zero, newWarning(asset, entity.WarningPriceUnavailable, "no "+string(metal)+" price available")
		}

		purity := ResolvePurity(holding)
		value, err := conv.ValueOfMetal(holding.WeightGrams, purity.Purity, quote.PricePerGram, quote.Currency, currency)
		if err != nil {
			return decimal.Zero, warningFromError(asset, err)
		}
		if purity.Fallback {
			return RoundMoney(value), newWarning(asset, entity.WarningUnknownKarat,
				fmt.Sprintf("unknown karat %d valued at full weight", holding.Karat))
		}
		return RoundMoney(value), nil

	case entity.MonetaryHolding:
		value, err := conv.Convert(holding.Value, holding.Currency, currency)
		if err != nil {
			return decimal.Zero, warningFromError(asset, err)
		}
		return RoundMoney(value), nil

	default:
		return decimal.Zero, newWarning(asset, entity.WarningInvalidHolding, "asset has no holding")
	}
}

func (e *Engine) sumLiabilities(conv *Converter, liabilities []entity.Liability, currency string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, l := range liabilities {
		if l.Amount.IsNegative() {
			return decimal.Zero, domainerror.NewCalculationError(
				domainerror.ErrCodeInvalidLiability,
				"liability "+l.Description+" has a negative amount",
				domainerror.ErrInvalidLiability,
			)
		}
		from := l.Currency
		if from == "" {
			from = currency
		}
		value, err := conv.Convert(l.Amount, from, currency)
		if err != nil {
			return decimal.Zero, err
		}
		sum = sum.Add(RoundMoney(value))
	}
	return sum, nil
}

// allocate spreads the obligation over eligible entries in proportion to their value.
// Shares are floored to cents and the remaining cents go one at a time to the
// entries with the largest fractional parts, so no share is negative and the
// shares add up to the total.
func allocate(entries []entity.BreakdownEntry, total, eligible, net decimal.Decimal) {
	cent := decimal.New(1, -2)

	var order []int
	remainders := make(map[int]decimal.Decimal)
	allocated := decimal.Zero
	for i := range entries {
		if !entries[i].Eligible || !entries[i].Value.IsPositive() {
			continue
		}
		exact := entries[i].Value.Mul(valueobject.ZakatRate)
		if !net.Equal(eligible) {
			exact = exact.Mul(net).Div(eligible)
		}
		floor := exact.RoundFloor(2)
		entries[i].ZakatAmount = floor
		allocated = allocated.Add(floor)
		remainders[i] = exact.Sub(floor)
		order = append(order, i)
	}
	if len(order) == 0 {
		return
	}

	slices.SortStableFunc(order, func(a, b int) int {
		return remainders[b].Cmp(remainders[a])
	})

	left := total.Sub(allocated)
	for k := 0; left.GreaterThanOrEqual(cent); k++ {
		i := order[k%len(order)]
		entries[i].ZakatAmount = entries[i].ZakatAmount.Add(cent)
		left = left.Sub(cent)
	}
}

func newWarning(asset *entity.Asset, code entity.WarningCode, message string) *entity.CalculationWarning {
	return &entity.CalculationWarning{
		AssetID: asset.ID,
		Code:    code,
		Message: message,
	}
}

func warningFromError(asset *entity.Asset, err error) *entity.CalculationWarning {
	var currencyErr *domainerror.CurrencyError
	if errors.As(err, &currencyErr) && currencyErr.Code == domainerror.ErrCodeUnsupportedCurrency {
		return newWarning(asset, entity.WarningUnsupportedCurrency, currencyErr.Error())
	}
	return newWarning(asset, entity.WarningInvalidRate, err.Error())
}

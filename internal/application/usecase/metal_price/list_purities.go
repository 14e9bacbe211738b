// Package metalprice contains metal price use cases.
package metalprice

import (
	"github.com/zakat-manager/backend/internal/domain/valueobject"
)

// ListPuritiesOutput represents the recognized purity grades.
type ListPuritiesOutput struct {
	Gold   []valueobject.PurityStandard
	Silver []valueobject.PurityStandard
}

// ListPuritiesUseCase returns the recognized gold karats and silver grades.
type ListPuritiesUseCase struct{}

// NewListPuritiesUseCase creates a new ListPuritiesUseCase instance.
func NewListPuritiesUseCase() *ListPuritiesUseCase {
	return &ListPuritiesUseCase{}
}

// Execute returns the tables.
func (uc *ListPuritiesUseCase) Execute() *ListPuritiesOutput {
	return &ListPuritiesOutput{
		Gold:   valueobject.GoldKaratStandards,
		Silver: valueobject.SilverStandards,
	}
}

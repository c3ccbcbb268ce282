package ordering

import (
	"fmt"
	"math"
	"strings"
)

// Business rules for payroll-deduction orders.
const (
	// InstallmentFloor is the minimum current total required to split an
	// order into more than one installment.
	InstallmentFloor = 100.0
	MaxInstallments  = 10
)

// ValidationError marks bad or missing caller input. Its message is safe to
// surface to the caller as-is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

// LineItem is the order line shape accepted at the API boundary.
type LineItem struct {
	Code        string  `json:"codigo_produto"`
	Description string  `json:"descricao_produto"`
	Quantity    float64 `json:"quantidade"`
	UnitPrice   float64 `json:"preco_unitario"`
}

// ComputeTotal sums quantity x unit price over all items. An order must have
// at least one item.
func ComputeTotal(items []LineItem) (float64, error) {
	if len(items) == 0 {
		return 0, validationf("the order must have at least one item")
	}
	var total float64
	for _, it := range items {
		total += it.Quantity * it.UnitPrice
	}
	return total, nil
}

// ClampInstallments clamps the requested installment count into [1,10].
func ClampInstallments(requested int) int {
	if requested < 1 {
		return 1
	}
	if requested > MaxInstallments {
		return MaxInstallments
	}
	return requested
}

// NormalizeInstallments clamps requested into [1,10] and forces a single
// installment for totals under the floor.
func NormalizeInstallments(requested int, total float64) int {
	n := ClampInstallments(requested)
	if total < InstallmentFloor {
		return 1
	}
	return n
}

// ValidateLineItems checks every item and returns a ValidationError naming
// the first offending item (1-indexed) and field, or nil when all pass.
func ValidateLineItems(items []LineItem) error {
	if len(items) == 0 {
		return validationf("the order must have at least one item")
	}
	for i, it := range items {
		n := i + 1
		if strings.TrimSpace(it.Code) == "" {
			return validationf("item #%d: product code is required", n)
		}
		if strings.TrimSpace(it.Description) == "" {
			return validationf("item #%d: product description is required", n)
		}
		if !isFinite(it.Quantity) || it.Quantity <= 0 {
			return validationf("item #%d: invalid quantity", n)
		}
		if !isFinite(it.UnitPrice) || it.UnitPrice < 0 {
			return validationf("item #%d: invalid unit price", n)
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

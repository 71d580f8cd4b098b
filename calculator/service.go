package calculator

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	auth "github.com/goliatone/go-auth-api"
)

var (
	ErrNotValidOperators = errors.New("NotValidOperators")
	ErrDivisionByZero    = errors.New("DivisionByZero")
	ErrUnknownOperation  = errors.New("UnknownOperation")
)

// Operation names accepted by Service.Calculate
const (
	OpAdd      = "add"
	OpMinus    = "minus"
	OpMultiply = "multiply"
	OpDivide   = "divide"
)

// Service performs arithmetic and records each successful operation
type Service struct {
	activity *auth.ActivityEmitter
}

func NewService(activity *auth.ActivityEmitter) *Service {
	return &Service{activity: activity}
}

func (s *Service) Add(ctx context.Context, a, b float64) (float64, error) {
	if !validOperators(a, b) {
		return 0, ErrNotValidOperators
	}
	s.record(ctx, "Suma de %s y %s", a, b)
	return a + b, nil
}

func (s *Service) Minus(ctx context.Context, a, b float64) (float64, error) {
	if !validOperators(a, b) {
		return 0, ErrNotValidOperators
	}
	s.record(ctx, "Resta de %s y %s", a, b)
	return a - b, nil
}

func (s *Service) Multiply(ctx context.Context, a, b float64) (float64, error) {
	if !validOperators(a, b) {
		return 0, ErrNotValidOperators
	}
	s.record(ctx, "Multiplicación de %s y %s", a, b)
	return a * b, nil
}

func (s *Service) Divide(ctx context.Context, a, b float64) (float64, error) {
	if !validOperators(a, b) {
		return 0, ErrNotValidOperators
	}
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	s.record(ctx, "División de %s y %s", a, b)
	return a / b, nil
}

// Calculate dispatches to the operation named op
func (s *Service) Calculate(ctx context.Context, op string, a, b float64) (float64, error) {
	switch op {
	case OpAdd:
		return s.Add(ctx, a, b)
	case OpMinus:
		return s.Minus(ctx, a, b)
	case OpMultiply:
		return s.Multiply(ctx, a, b)
	case OpDivide:
		return s.Divide(ctx, a, b)
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOperation, op)
	}
}

func (s *Service) record(ctx context.Context, format string, a, b float64) {
	s.activity.Emit(ctx, auth.ActivityEvent{
		EventType: auth.ActivityEventCalculation,
		Message:   fmt.Sprintf(format, formatNumber(a), formatNumber(b)),
	})
}

func validOperators(a, b float64) bool {
	return isFinite(a) && isFinite(b)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package middleware

import (
	"strconv"

	"video-quiz/internal/domain"
	"video-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const ValidatedCountKey = "validated_count"

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator    *validation.Validator
	defaultCount int
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware(validator *validation.Validator, defaultCount int) *ValidationMiddleware {
	return &ValidationMiddleware{
		validator:    validator,
		defaultCount: defaultCount,
	}
}

// ValidateQuestionCount validates the optional count query parameter and
// stores the effective value in the context.
func (vm *ValidationMiddleware) ValidateQuestionCount() fiber.Handler {
	return func(c *fiber.Ctx) error {
		count := vm.defaultCount
		if countStr := c.Query("count"); countStr != "" {
			parsed, err := parseCount(countStr, vm.validator.MaxQuestionCount())
			if err != nil {
				return domain.ValidationErrors{
					domain.NewInvalidFormatError("count", countStr),
				}
			}
			count = parsed
		}

		if errors := vm.validator.ValidateCount(count); len(errors) > 0 {
			return errors
		}

		c.Locals(ValidatedCountKey, count)
		return c.Next()
	}
}

// GetValidatedCount returns the count stored by ValidateQuestionCount.
func GetValidatedCount(c *fiber.Ctx, fallback int) int {
	if count, ok := c.Locals(ValidatedCountKey).(int); ok {
		return count
	}
	return fallback
}

// parseCount accepts only plain decimal digits. Values above limit are returned
// as limit+1 so range validation reports them without overflowing.
func parseCount(countStr string, limit int) (int, error) {
	count := 0
	for _, char := range countStr {
		if char < '0' || char > '9' {
			return 0, strconv.ErrSyntax
		}
		count = count*10 + int(char-'0')
		if count > limit {
			return limit + 1, nil
		}
	}
	return count, nil
}

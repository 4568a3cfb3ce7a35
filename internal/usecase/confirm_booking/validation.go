package confirm_booking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

var validate = validator.New()

// validateRequest валидирует входные данные запроса и нормализует данные клиента
func validateRequest(req *Request) (domain.CustomerInfo, error) {
	if _, err := uuid.Parse(req.HoldID); err != nil {
		return domain.CustomerInfo{}, fmt.Errorf("%w: hold_id must be a UUID", ErrInvalidInput)
	}

	customer := domain.CustomerInfo{
		Name:        strings.TrimSpace(req.Customer.Name),
		Email:       strings.TrimSpace(req.Customer.Email),
		Phone:       trimOptional(req.Customer.Phone),
		Notes:       trimOptional(req.Customer.Notes),
		TotalAmount: req.Customer.TotalAmount,
	}

	err := validate.Struct(customerInput{
		Name:        customer.Name,
		Email:       customer.Email,
		Phone:       customer.Phone,
		Notes:       customer.Notes,
		TotalAmount: customer.TotalAmount,
	})
	if err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return domain.CustomerInfo{}, fmt.Errorf("%w: %s", ErrInvalidInput, describe(fieldErrs[0]))
		}
		return domain.CustomerInfo{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return customer, nil
}

func describe(fe validator.FieldError) string {
	field := map[string]string{
		"Name":        "customer_name",
		"Email":       "customer_email",
		"Phone":       "customer_phone",
		"Notes":       "notes",
		"TotalAmount": "total_amount",
	}[fe.Field()]

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}

// trimOptional обрезает пробелы; пустая строка превращается в nil
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

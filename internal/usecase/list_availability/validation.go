package list_availability

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// buildPolicy собирает политику генерации из запроса, подставляя дефолты
// вместо нулевых значений, и валидирует её до любых внешних вызовов
func buildPolicy(req *Request) (domain.GenerationPolicy, error) {
	policy := domain.DefaultGenerationPolicy()

	if req.HorizonDays != 0 {
		policy.HorizonDays = req.HorizonDays
	}
	if req.SlotDurationMinutes != 0 {
		policy.SlotDurationMinutes = req.SlotDurationMinutes
	}
	if req.hasWorkingHours {
		policy.WorkingHours = domain.WorkingHours{
			StartHour: req.WorkingHoursStart,
			EndHour:   req.WorkingHoursEnd,
		}
	}

	if err := policy.Validate(); err != nil {
		return domain.GenerationPolicy{}, fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}
	return policy, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SellerID <= 0 {
		return fmt.Errorf("%w: sellerID must be positive", ErrInvalidInput)
	}
	if req.HorizonDays < 0 {
		return fmt.Errorf("%w: horizonDays must not be negative", ErrInvalidInput)
	}
	if req.SlotDurationMinutes < 0 {
		return fmt.Errorf("%w: slotDurationMinutes must not be negative", ErrInvalidInput)
	}
	return nil
}

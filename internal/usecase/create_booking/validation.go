package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BuyerID <= 0 {
		return fmt.Errorf("%w: buyerID must be positive", ErrInvalidInput)
	}

	if req.SellerID <= 0 {
		return fmt.Errorf("%w: sellerID must be positive", ErrInvalidInput)
	}

	if req.BuyerID == req.SellerID {
		return fmt.Errorf("%w: buyer and seller must differ", ErrInvalidInput)
	}

	if req.Start.IsZero() || req.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}

	interval := domain.Interval{Start: req.Start, End: req.End}
	if err := interval.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}

	return nil
}

// horizonCovering возвращает горизонт в днях, покрывающий запрошенный интервал.
// Freebusy запрашивается окном [now, now+horizon), поэтому горизонт должен
// дотягиваться до конца кандидата.
func horizonCovering(end time.Time, now time.Time) int {
	days := int(end.Sub(now).Hours()/24) + 1
	if days < domain.DefaultHorizonDays {
		return domain.DefaultHorizonDays
	}
	if days > domain.MaxHorizonDays {
		return domain.MaxHorizonDays
	}
	return days
}

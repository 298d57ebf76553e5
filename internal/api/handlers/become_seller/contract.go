package become_seller

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/sellers/models"
)

type SellersService interface {
	BecomeSeller(ctx context.Context, userID int64) (*models.BecomeSellerResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

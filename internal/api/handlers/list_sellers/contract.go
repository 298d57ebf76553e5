package list_sellers

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/sellers/models"
)

type SellersService interface {
	ListSellers(ctx context.Context) (*models.SellerListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

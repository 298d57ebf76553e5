package get_availability

import (
	"time"

	listAvailability "github.com/m04kA/SMC-AppointmentService/internal/usecase/list_availability"
)

// SlotResponse HTTP модель доступного слота
type SlotResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	SellerID int64          `json:"sellerId"`
	Slots    []SlotResponse `json:"slots"`
	Count    int            `json:"count"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *listAvailability.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			Start: s.Start,
			End:   s.End,
			Label: s.Label,
		})
	}

	return &AvailabilityResponse{
		SellerID: resp.SellerID,
		Slots:    slots,
		Count:    resp.Count,
	}
}

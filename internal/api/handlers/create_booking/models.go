package create_booking

import (
	"time"

	createBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SellerID int64     `json:"sellerId"`
	Start    time.Time `json:"start"` // RFC 3339
	End      time.Time `json:"end"`   // RFC 3339
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64   `json:"id"`
	SellerID      int64   `json:"sellerId"`
	BuyerID       int64   `json:"buyerId"`
	Start         string  `json:"start"`
	End           string  `json:"end"`
	Summary       string  `json:"summary"`
	GoogleEventID string  `json:"googleEventId"`
	MeetURL       *string `json:"meetUrl,omitempty"`
	CreatedAt     string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(buyerID int64) *createBooking.Request {
	return &createBooking.Request{
		BuyerID:  buyerID,
		SellerID: r.SellerID,
		Start:    r.Start.UTC(),
		End:      r.End.UTC(),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.AppointmentID,
		SellerID:      resp.SellerID,
		BuyerID:       resp.BuyerID,
		Start:         resp.Start.Format(time.RFC3339),
		End:           resp.End.Format(time.RFC3339),
		Summary:       resp.Summary,
		GoogleEventID: resp.GoogleEventID,
		MeetURL:       resp.MeetURL,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}

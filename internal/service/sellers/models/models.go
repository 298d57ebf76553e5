package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// SlotPreview ближайший доступный слот в превью каталога
type SlotPreview struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

// SellerResponse карточка продавца в каталоге
type SellerResponse struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	CalendarConnected bool   `json:"calendarConnected"`

	// Ближайшие доступные слоты; пустой список, если календарь не
	// подключен или временно недоступен
	NextSlots []SlotPreview `json:"nextSlots"`
}

// SellerListResponse ответ со списком продавцов
type SellerListResponse struct {
	Sellers []SellerResponse `json:"sellers"`
}

// BecomeSellerResponse ответ на смену роли
type BecomeSellerResponse struct {
	ID                int64  `json:"id"`
	Role              string `json:"role"`
	CalendarConnected bool   `json:"calendarConnected"`
}

// FromDomainSeller конвертирует domain модель в карточку каталога
func FromDomainSeller(u *domain.User, slots []domain.Slot) SellerResponse {
	preview := make([]SlotPreview, 0, len(slots))
	for _, s := range slots {
		preview = append(preview, SlotPreview{
			Start: s.Start,
			End:   s.End,
			Label: s.Label,
		})
	}

	return SellerResponse{
		ID:                u.ID,
		Name:              u.DisplayName(),
		Email:             u.Email,
		CalendarConnected: u.CalendarConnected(),
		NextSlots:         preview,
	}
}

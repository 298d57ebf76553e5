package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrInvalidRoleView возвращается при некорректном ракурсе выборки
	ErrInvalidRoleView = errors.New("invalid role view")
)

// RoleView ракурс выборки встреч пользователя
type RoleView string

const (
	ViewAsBuyer  RoleView = "buyer"  // встречи, где пользователь покупатель
	ViewAsSeller RoleView = "seller" // встречи, где пользователь продавец
	ViewAll      RoleView = "all"    // обе роли
)

// ToRoleView конвертирует строку в RoleView с валидацией.
// Пустая строка трактуется как ViewAll.
func ToRoleView(s string) (RoleView, error) {
	switch RoleView(s) {
	case "":
		return ViewAll, nil
	case ViewAsBuyer:
		return ViewAsBuyer, nil
	case ViewAsSeller:
		return ViewAsSeller, nil
	case ViewAll:
		return ViewAll, nil
	}
	return "", ErrInvalidRoleView
}

// Request модели

// GetAppointmentsRequest запрос на получение встреч пользователя
type GetAppointmentsRequest struct {
	UserID int64    `json:"userId"`
	View   RoleView `json:"view"`
}

// Response модели

// AppointmentResponse ответ с данными встречи
type AppointmentResponse struct {
	ID            int64     `json:"id"`
	SellerID      int64     `json:"sellerId"`
	BuyerID       int64     `json:"buyerId"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	Summary       string    `json:"summary"`
	GoogleEventID string    `json:"googleEventId"`
	MeetURL       *string   `json:"meetUrl,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со встречами, разделенными на будущие и
// прошедшие; обе части в хронологическом порядке
type AppointmentListResponse struct {
	Upcoming []AppointmentResponse `json:"upcoming"`
	Past     []AppointmentResponse `json:"past"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:            a.ID,
		SellerID:      a.SellerID,
		BuyerID:       a.BuyerID,
		Start:         a.StartTime,
		End:           a.EndTime,
		Summary:       a.Summary,
		GoogleEventID: a.GoogleEventID,
		MeetURL:       a.Location,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// SplitByTime раскладывает встречи на будущие и прошедшие относительно now.
// Встреча считается прошедшей, как только началась.
func SplitByTime(appts []*domain.Appointment, now time.Time) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Upcoming: []AppointmentResponse{},
		Past:     []AppointmentResponse{},
	}

	for _, a := range appts {
		dto := FromDomainAppointment(a)
		if dto == nil {
			continue
		}
		if a.IsUpcoming(now) {
			resp.Upcoming = append(resp.Upcoming, *dto)
		} else {
			resp.Past = append(resp.Past, *dto)
		}
	}

	return resp
}

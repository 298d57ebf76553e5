package list_availability

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// Request модель запроса доступных слотов продавца.
// Нулевые значения полей политики заменяются дефолтами
// (14 дней, 30 минут, 09:00-17:00).
type Request struct {
	SellerID            int64
	HorizonDays         int
	SlotDurationMinutes int
	WorkingHoursStart   int
	WorkingHoursEnd     int

	hasWorkingHours bool // выставляется через SetWorkingHours
}

// SetWorkingHours задает нестандартное рабочее окно
func (r *Request) SetWorkingHours(startHour, endHour int) {
	r.WorkingHoursStart = startHour
	r.WorkingHoursEnd = endHour
	r.hasWorkingHours = true
}

// Response модель ответа со слотами в хронологическом порядке
type Response struct {
	SellerID int64
	Slots    []domain.Slot
	Count    int
}

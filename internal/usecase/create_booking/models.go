package create_booking

import "time"

// Request модель запроса на создание записи
type Request struct {
	BuyerID  int64     // ID покупателя (из заголовка авторизации)
	SellerID int64     // ID продавца
	Start    time.Time // Начало слота (UTC)
	End      time.Time // Конец слота (UTC)
}

// Response модель ответа с созданной записью
type Response struct {
	AppointmentID int64     // ID созданной записи
	SellerID      int64     // ID продавца
	BuyerID       int64     // ID покупателя
	Start         time.Time // Начало слота
	End           time.Time // Конец слота
	Summary       string    // Заголовок события в календаре

	GoogleEventID string  // ID события в календаре продавца
	MeetURL       *string // Ссылка на видеовстречу (если создана)

	CreatedAt time.Time // Время создания
}

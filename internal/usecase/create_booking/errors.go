package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidInterval возвращается, когда запрошенный интервал некорректен
	// (start >= end) или уже начался
	ErrInvalidInterval = errors.New("create_booking: invalid booking interval")

	// ErrSellerNotFound возвращается, когда продавец не найден
	ErrSellerNotFound = errors.New("create_booking: seller not found")

	// ErrBuyerNotFound возвращается, когда покупатель не найден
	ErrBuyerNotFound = errors.New("create_booking: buyer not found")

	// ErrNotSeller возвращается, когда пользователь не является продавцом
	ErrNotSeller = errors.New("create_booking: user is not a seller")

	// ErrSellerNotConnected возвращается, когда у продавца не подключен
	// календарь. Постоянное предусловие до повторной авторизации.
	ErrSellerNotConnected = errors.New("create_booking: seller calendar is not connected")

	// ErrCalendarUnavailable возвращается при транзиентной ошибке внешнего
	// календаря. Ретраи — ответственность вызывающей стороны.
	ErrCalendarUnavailable = errors.New("create_booking: calendar is unavailable")

	// ErrSlotConflict возвращается, когда авторитетная перепроверка нашла
	// пересечение с занятым интервалом. Клиент должен заново запросить
	// доступность и выбрать другой слот.
	ErrSlotConflict = errors.New("create_booking: slot is no longer available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

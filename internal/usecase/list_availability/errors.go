package list_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("list_availability: invalid input data")

	// ErrInvalidPolicy возвращается при некорректной политике генерации
	// слотов (горизонт, длительность, рабочие часы)
	ErrInvalidPolicy = errors.New("list_availability: invalid generation policy")

	// ErrSellerNotFound возвращается, когда продавец не найден
	ErrSellerNotFound = errors.New("list_availability: seller not found")

	// ErrNotSeller возвращается, когда пользователь не является продавцом
	ErrNotSeller = errors.New("list_availability: user is not a seller")

	// ErrSellerNotConnected возвращается, когда у продавца не подключен
	// календарь. Постоянное предусловие до повторной авторизации.
	ErrSellerNotConnected = errors.New("list_availability: seller calendar is not connected")

	// ErrCalendarUnavailable возвращается при транзиентной ошибке внешнего
	// календаря. Ретраи — ответственность вызывающей стороны.
	ErrCalendarUnavailable = errors.New("list_availability: calendar is unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("list_availability: internal error")
)

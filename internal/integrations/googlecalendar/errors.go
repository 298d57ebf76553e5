package googlecalendar

import "errors"

var (
	// ErrUnauthorized возвращается, когда токен отклонён или отозван
	ErrUnauthorized = errors.New("googlecalendar client: unauthorized")

	// ErrUnavailable возвращается при транспортных ошибках, rate limit и 5xx
	ErrUnavailable = errors.New("googlecalendar client: service unavailable")

	// ErrInvalidResponse возвращается при некорректном ответе API
	ErrInvalidResponse = errors.New("googlecalendar client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("googlecalendar client: internal error")
)

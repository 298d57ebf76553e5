package calendar

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("calendar service: user not found")

	// ErrNotConnected возвращается, когда у пользователя нет сохраненного
	// refresh токена. Постоянное предусловие — до повторной авторизации
	// запросы не имеют смысла и не ретраятся.
	ErrNotConnected = errors.New("calendar service: calendar is not connected")

	// ErrUnavailable возвращается при любой транзиентной ошибке внешнего
	// календаря (истекшая авторизация, сеть, rate limit). Вызывающая сторона
	// маппит её в retryable ошибку; сам сервис ничего не ретраит.
	ErrUnavailable = errors.New("calendar service: calendar is unavailable")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("calendar service: internal error")
)

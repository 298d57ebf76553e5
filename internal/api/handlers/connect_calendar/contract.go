package connect_calendar

import "context"

type CalendarService interface {
	ConnectCalendar(ctx context.Context, userID int64, code string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

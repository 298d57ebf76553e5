package connect_calendar

// ConnectCalendarRequest HTTP request model
type ConnectCalendarRequest struct {
	Code string `json:"code"` // authorization code из OAuth redirect
}

// ConnectCalendarResponse HTTP response model
type ConnectCalendarResponse struct {
	Connected bool `json:"connected"`
}

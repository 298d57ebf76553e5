package googlecalendar

import "time"

// Tokens результат обмена кода или refresh-гранта
type Tokens struct {
	AccessToken  string
	RefreshToken string // пустой при refresh-гранте
	ExpiresAt    time.Time
}

// Event параметры создаваемого события
type Event struct {
	Summary        string
	Description    string
	Start          time.Time
	End            time.Time
	Attendees      []string // email адреса
	WithConference bool     // запросить Meet-ссылку
}

// CreatedEvent результат events.insert
type CreatedEvent struct {
	ID          string
	HangoutLink string // пустой, если конференция не создана
}

// --- wire модели ---

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

type freeBusyRequest struct {
	TimeMin string             `json:"timeMin"`
	TimeMax string             `json:"timeMax"`
	Items   []freeBusyCalendar `json:"items"`
}

type freeBusyCalendar struct {
	ID string `json:"id"`
}

type freeBusyResponse struct {
	Calendars map[string]struct {
		Busy []struct {
			Start time.Time `json:"start"`
			End   time.Time `json:"end"`
		} `json:"busy"`
		Errors []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"calendars"`
}

type eventDateTime struct {
	DateTime string `json:"dateTime"`
}

type eventAttendee struct {
	Email string `json:"email"`
}

type conferenceCreateRequest struct {
	RequestID string `json:"requestId"`
}

type conferenceData struct {
	CreateRequest *conferenceCreateRequest `json:"createRequest,omitempty"`
}

type eventRequest struct {
	Summary        string          `json:"summary"`
	Description    string          `json:"description,omitempty"`
	Start          eventDateTime   `json:"start"`
	End            eventDateTime   `json:"end"`
	Attendees      []eventAttendee `json:"attendees,omitempty"`
	ConferenceData *conferenceData `json:"conferenceData,omitempty"`
}

type eventResponse struct {
	ID          string `json:"id"`
	HangoutLink string `json:"hangoutLink"`
	Status      string `json:"status"`
}

// errorResponse стандартный конверт ошибки Google API
type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

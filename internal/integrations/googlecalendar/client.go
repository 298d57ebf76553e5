package googlecalendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const (
	defaultTokenURL        = "https://oauth2.googleapis.com/token"
	defaultCalendarBaseURL = "https://www.googleapis.com/calendar/v3"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент Google Calendar API (OAuth token endpoint, freebusy.query,
// events.insert). Таймауты и ретраи — ответственность вызывающей стороны.
type Client struct {
	clientID     string
	clientSecret string
	redirectURI  string
	tokenURL     string
	baseURL      string
	httpClient   *http.Client
	log          Logger
}

// NewClient создает новый экземпляр клиента Google Calendar.
// Пустые tokenURL/baseURL заменяются продакшн-эндпоинтами Google.
func NewClient(clientID, clientSecret, redirectURI, tokenURL, baseURL string, timeout time.Duration, log Logger) *Client {
	if tokenURL == "" {
		tokenURL = defaultTokenURL
	}
	if baseURL == "" {
		baseURL = defaultCalendarBaseURL
	}
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		tokenURL:     tokenURL,
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ExchangeCode обменивает authorization code на пару токенов
func (c *Client) ExchangeCode(ctx context.Context, code string) (*Tokens, error) {
	form := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"redirect_uri":  {c.redirectURI},
	}
	return c.requestTokens(ctx, form)
}

// RefreshAccessToken получает свежий access token по refresh token
func (c *Client) RefreshAccessToken(ctx context.Context, refreshToken string) (*Tokens, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
	}
	return c.requestTokens(ctx, form)
}

func (c *Client) requestTokens(ctx context.Context, form url.Values) (*Tokens, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: token request failed: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized:
		// Google отвечает 400 invalid_grant на отозванные refresh токены
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: token endpoint status %d: %s", ErrUnauthorized, resp.StatusCode, string(body))
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: token endpoint status %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("%w: failed to decode token response: %v", ErrInvalidResponse, err)
	}
	if tr.AccessToken == "" {
		return nil, fmt.Errorf("%w: token response without access_token", ErrInvalidResponse)
	}

	return &Tokens{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second),
	}, nil
}

// FreeBusy запрашивает занятые интервалы календаря за полуоткрытое окно
// [timeMin, timeMax)
func (c *Client) FreeBusy(ctx context.Context, accessToken, calendarID string, timeMin, timeMax time.Time) ([]domain.Interval, error) {
	reqBody := freeBusyRequest{
		TimeMin: timeMin.Format(time.RFC3339),
		TimeMax: timeMax.Format(time.RFC3339),
		Items:   []freeBusyCalendar{{ID: calendarID}},
	}

	var fbResp freeBusyResponse
	if err := c.doJSON(ctx, accessToken, http.MethodPost, c.baseURL+"/freeBusy", http.StatusOK, reqBody, &fbResp); err != nil {
		return nil, err
	}

	cal, ok := fbResp.Calendars[calendarID]
	if !ok {
		return nil, fmt.Errorf("%w: calendar %s missing in freebusy response", ErrInvalidResponse, calendarID)
	}
	if len(cal.Errors) > 0 {
		return nil, fmt.Errorf("%w: freebusy reported %q for calendar %s", ErrUnavailable, cal.Errors[0].Reason, calendarID)
	}

	busy := make([]domain.Interval, 0, len(cal.Busy))
	for _, b := range cal.Busy {
		busy = append(busy, domain.Interval{Start: b.Start, End: b.End})
	}
	return busy, nil
}

// InsertEvent создает событие в указанном календаре. При WithConference
// запрашивается создание Meet-конференции (conferenceDataVersion=1).
func (c *Client) InsertEvent(ctx context.Context, accessToken, calendarID string, event Event) (*CreatedEvent, error) {
	reqBody := eventRequest{
		Summary:     event.Summary,
		Description: event.Description,
		Start:       eventDateTime{DateTime: event.Start.Format(time.RFC3339)},
		End:         eventDateTime{DateTime: event.End.Format(time.RFC3339)},
	}
	for _, email := range event.Attendees {
		if email == "" {
			continue
		}
		reqBody.Attendees = append(reqBody.Attendees, eventAttendee{Email: email})
	}

	endpoint := fmt.Sprintf("%s/calendars/%s/events?sendUpdates=all", c.baseURL, url.PathEscape(calendarID))
	if event.WithConference {
		reqBody.ConferenceData = &conferenceData{
			CreateRequest: &conferenceCreateRequest{
				RequestID: fmt.Sprintf("meet-%d", time.Now().UnixNano()),
			},
		}
		endpoint += "&conferenceDataVersion=1"
	}

	var evResp eventResponse
	if err := c.doJSON(ctx, accessToken, http.MethodPost, endpoint, http.StatusOK, reqBody, &evResp); err != nil {
		return nil, err
	}
	if evResp.ID == "" {
		return nil, fmt.Errorf("%w: event response without id", ErrInvalidResponse)
	}

	return &CreatedEvent{
		ID:          evResp.ID,
		HangoutLink: evResp.HangoutLink,
	}, nil
}

// doJSON выполняет авторизованный JSON запрос и маппит статус-коды на
// ошибки клиента
func (c *Client) doJSON(ctx context.Context, accessToken, method, endpoint string, wantStatus int, in, out interface{}) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: request failed: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == wantStatus:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", ErrUnauthorized, resp.StatusCode)
	default:
		var apiErr errorResponse
		body, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, apiErr.Error.Message)
		}
		return fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}

package calendarsync

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/eswan18/fitness-api-sub000/internal/apperr"
	"github.com/eswan18/fitness-api-sub000/internal/runs"
	"github.com/eswan18/fitness-api-sub000/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const googleCalendarService = "google calendar"

//go:generate mockgen -source=$GOFILE -destination=calendar_mocks_test.go -package=calendarsync

type Calendar interface {
	CreateEvent(ctx context.Context, run runs.Run) (eventID string, err error)
	DeleteEvent(ctx context.Context, eventID string) error
}

type GoogleCalendar struct {
	service    *calendar.Service
	calendarID string
}

// NewGoogleCalendar authenticates with a service account or authorized user credentials file
// content. Calls are traced through otelhttp.
func NewGoogleCalendar(ctx context.Context, credentialsJSON []byte, calendarID string) (*GoogleCalendar, error) {
	creds, err := google.CredentialsFromJSON(ctx, credentialsJSON, calendar.CalendarEventsScope)
	if err != nil {
		return nil, fmt.Errorf("google calendar credentials: %w", err)
	}

	httpClient := &http.Client{
		Timeout: 15 * time.Second,
		Transport: otelhttp.NewTransport(&oauth2.Transport{
			Source: creds.TokenSource,
			Base:   http.DefaultTransport,
		}),
	}

	return NewGoogleCalendarWithOptions(ctx, calendarID, option.WithHTTPClient(httpClient))
}

func NewGoogleCalendarWithOptions(ctx context.Context, calendarID string, opts ...option.ClientOption) (*GoogleCalendar, error) {
	service, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create google calendar service: %w", err)
	}
	if calendarID == "" {
		calendarID = "primary"
	}
	return &GoogleCalendar{
		service:    service,
		calendarID: calendarID,
	}, nil
}

func (g *GoogleCalendar) CreateEvent(ctx context.Context, run runs.Run) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "calendar.google.createEvent")
	defer func() { tracing.EndSpan(span, err) }()

	event, err := g.service.Events.Insert(g.calendarID, EventFor(run)).Context(ctx).Do()
	if err != nil {
		return "", apperr.External(googleCalendarService, "create event", err)
	}

	log.Infof("created calendar event %s for run %s in calendar %s", event.Id, run.ID, g.calendarID)
	return event.Id, nil
}

func (g *GoogleCalendar) DeleteEvent(ctx context.Context, eventID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "calendar.google.deleteEvent")
	defer func() { tracing.EndSpan(span, err) }()

	if err := g.service.Events.Delete(g.calendarID, eventID).Context(ctx).Do(); err != nil {
		return apperr.External(googleCalendarService, "delete event", err)
	}

	log.Infof("deleted calendar event %s from calendar %s", eventID, g.calendarID)
	return nil
}

// EventFor builds the calendar event of a run: it starts at the run's UTC time and lasts
// as long as the run.
func EventFor(run runs.Run) *calendar.Event {
	runType := run.Type
	if runType == "" {
		runType = "Run"
	}

	duration := time.Duration(run.Duration) * time.Second
	if duration < 0 {
		duration = 0
	}
	start := run.DatetimeUTC.UTC()

	return &calendar.Event{
		Summary:     fmt.Sprintf("%.1f Mile %s", run.Distance, runType),
		Description: fmt.Sprintf("Workout synced from fitness app\nRun ID: %s", run.ID),
		Start: &calendar.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: "UTC",
		},
		End: &calendar.EventDateTime{
			DateTime: start.Add(duration).Format(time.RFC3339),
			TimeZone: "UTC",
		},
	}
}

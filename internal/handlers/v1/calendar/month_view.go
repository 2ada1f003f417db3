// Package calendar serves the month view: stored transactions plus the
// projected occurrences of recurring ones.
package calendar

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	dates "github.com/carson-networks/household-server/internal/calendar"
	"github.com/carson-networks/household-server/internal/handlers/v1/apiutil"
	"github.com/carson-networks/household-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/household-server/internal/logging"
	"github.com/carson-networks/household-server/internal/recurrence"
)

// Entry is one row of the month view.
type Entry struct {
	Date        string                  `json:"date" doc:"yyyy-MM-dd the entry falls on"`
	Projected   bool                    `json:"projected" doc:"True for occurrences generated from a recurring transaction"`
	Transaction transaction.Transaction `json:"transaction" doc:"The stored row, or the recurring source for projected entries"`
}

type MonthViewInput struct {
	apiutil.HouseholdPath
	Year  int `path:"year" minimum:"1" maximum:"9999"`
	Month int `path:"month" minimum:"1" maximum:"12"`
}

type MonthViewResponseBody struct {
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Entries []Entry `json:"entries" doc:"Ascending by date"`
}

type MonthViewOutput struct {
	Body MonthViewResponseBody
}

type monthViewer interface {
	Month(ctx context.Context, household uuid.UUID, year int, month time.Month) ([]recurrence.Entry, error)
}

// MonthViewHandler handles GET /v1/households/{householdID}/calendar/{year}/{month}.
type MonthViewHandler struct {
	CalendarService monthViewer
}

func NewMonthViewHandler(svc monthViewer) *MonthViewHandler {
	return &MonthViewHandler{CalendarService: svc}
}

func (h *MonthViewHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "calendar-month",
		Method:      http.MethodGet,
		Path:        "/v1/households/{householdID}/calendar/{year}/{month}",
		Summary:     "Month view",
		Description: "Lists the month's transactions together with projected occurrences of recurring ones.",
		Tags:        []string{"Calendar"},
	}, h.handle)
}

func (h *MonthViewHandler) handle(ctx context.Context, input *MonthViewInput) (*MonthViewOutput, error) {
	household, err := apiutil.ParseUUID("householdID", input.HouseholdID)
	if err != nil {
		return nil, err
	}

	entries, err := h.CalendarService.Month(ctx, household, input.Year, time.Month(input.Month))
	if err != nil {
		return nil, apiutil.Error(ctx, err, "failed to build month view")
	}
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("entryCount", len(entries))
	}

	resp := MonthViewResponseBody{Year: input.Year, Month: input.Month, Entries: make([]Entry, len(entries))}
	for i, e := range entries {
		resp.Entries[i] = Entry{
			Date:        dates.Format(e.Date),
			Projected:   e.Projected,
			Transaction: transaction.FromModel(e.Transaction),
		}
	}
	return &MonthViewOutput{Body: resp}, nil
}

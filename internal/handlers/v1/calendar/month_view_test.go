package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/household-server/internal/finance"
	"github.com/carson-networks/household-server/internal/recurrence"
)

var household = uuid.Must(uuid.NewV4())

type mockMonthViewer struct {
	mock.Mock
}

func (m *mockMonthViewer) Month(ctx context.Context, h uuid.UUID, year int, month time.Month) ([]recurrence.Entry, error) {
	args := m.Called(ctx, h, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]recurrence.Entry), args.Error(1)
}

func newTestAPI(t *testing.T, svc monthViewer) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewMonthViewHandler(svc).Register(api)
	return api
}

func monthPath(year, month int) string {
	return fmt.Sprintf("/v1/households/%s/calendar/%d/%d", household, year, month)
}

func TestHTTP_MonthView(t *testing.T) {
	rent := finance.Transaction{
		ID:          uuid.Must(uuid.NewV4()),
		Description: "Rent",
		Amount:      decimal.RequireFromString("-1500"),
		Date:        civil.Date{Year: 2024, Month: time.January, Day: 31},
		Type:        finance.TypeExpense,
		Category:    "Housing",
		Account:     "Checking",
		IsRecurring: true,
		Frequency:   finance.FrequencyMonthly,
	}
	svc := new(mockMonthViewer)
	svc.On("Month", mock.Anything, household, 2024, time.February).Return([]recurrence.Entry{
		{Date: civil.Date{Year: 2024, Month: time.February, Day: 29}, Transaction: rent, Projected: true},
	}, nil)

	resp := newTestAPI(t, svc).Get(monthPath(2024, 2))

	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var body MonthViewResponseBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Entries, 1)
	assert.Equal(t, "2024-02-29", body.Entries[0].Date)
	assert.True(t, body.Entries[0].Projected)
	assert.Equal(t, "2024-01-31", body.Entries[0].Transaction.Date)
	assert.Equal(t, 2, body.Month)
	svc.AssertExpectations(t)
}

func TestHTTP_MonthView_EmptyMonth(t *testing.T) {
	svc := new(mockMonthViewer)
	svc.On("Month", mock.Anything, household, 2024, time.March).Return([]recurrence.Entry{}, nil)

	resp := newTestAPI(t, svc).Get(monthPath(2024, 3))

	require.Equal(t, http.StatusOK, resp.Code)
	var body MonthViewResponseBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotNil(t, body.Entries)
	assert.Empty(t, body.Entries)
}

func TestHTTP_MonthView_InvalidMonth(t *testing.T) {
	svc := new(mockMonthViewer)

	resp := newTestAPI(t, svc).Get(monthPath(2024, 13))

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	svc.AssertNotCalled(t, "Month")
}

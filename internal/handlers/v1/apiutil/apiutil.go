// Package apiutil holds the request parsing and error mapping shared by the
// v1 handlers.
package apiutil

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/household-server/internal/billing"
	"github.com/carson-networks/household-server/internal/calendar"
	"github.com/carson-networks/household-server/internal/finance"
	"github.com/carson-networks/household-server/internal/installment"
	"github.com/carson-networks/household-server/internal/logging"
	"github.com/carson-networks/household-server/internal/operator"
	"github.com/carson-networks/household-server/internal/posting"
)

// HouseholdPath is embedded in every household-scoped input.
type HouseholdPath struct {
	HouseholdID string `path:"householdID" doc:"Household UUID shared by everyone using the ledger"`
}

// ParseUUID parses value or returns a 400 naming field.
func ParseUUID(field, value string) (uuid.UUID, error) {
	id, err := uuid.FromString(value)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return id, nil
}

// ParseDecimal parses value, treating an empty string as zero.
func ParseDecimal(field, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return d, nil
}

var badRequest = []error{
	posting.ErrInvalidRequest,
	posting.ErrMissingTransferAccounts,
	installment.ErrInvalidCount,
	finance.ErrInvalidAccount,
	finance.ErrInvalidCard,
	finance.ErrAccountNotFound,
	billing.ErrInvalidDay,
	billing.ErrInvalidForecast,
	calendar.ErrInvalidDate,
}

var notFound = []error{
	finance.ErrTransactionNotFound,
	finance.ErrCardNotFound,
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Error maps a service or operator error to a huma status error and records
// it on the request's LogData.
func Error(ctx context.Context, err error, message string) error {
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("error", err.Error())
	}

	switch {
	case isAny(err, badRequest):
		return huma.NewError(http.StatusBadRequest, err.Error())
	case isAny(err, notFound):
		return huma.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, finance.ErrDuplicateName):
		return huma.NewError(http.StatusConflict, err.Error())
	case errors.Is(err, operator.ErrStopped), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return huma.NewError(http.StatusServiceUnavailable, message, err)
	default:
		return huma.NewError(http.StatusInternalServerError, message, err)
	}
}

package apiutil

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/household-server/internal/finance"
	"github.com/carson-networks/household-server/internal/logging"
	"github.com/carson-networks/household-server/internal/posting"
)

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var se huma.StatusError
	require.True(t, errors.As(err, &se), "not a huma status error: %v", err)
	return se.GetStatus()
}

func TestError_Mapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("wrapped: %w", posting.ErrInvalidRequest), http.StatusBadRequest},
		{fmt.Errorf("transfer: %w", posting.ErrMissingTransferAccounts), http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", finance.ErrCardNotFound), http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", finance.ErrTransactionNotFound), http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", finance.ErrDuplicateName), http.StatusConflict},
		{context.DeadlineExceeded, http.StatusServiceUnavailable},
		{errors.New("connection refused"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, statusOf(t, Error(context.Background(), c.err, "failed")), "error %v", c.err)
	}
}

func TestError_RecordsOnLogData(t *testing.T) {
	logData := logging.NewLogData(logging.SetupLogging())
	ctx := logging.WithLogData(context.Background(), logData)

	_ = Error(ctx, errors.New("boom"), "failed")

	assert.Equal(t, "boom", logData.Log().Data["error"])
}

func TestParse(t *testing.T) {
	_, err := ParseUUID("householdID", "not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	d, err := ParseDecimal("limit", "")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = ParseDecimal("limit", "12,5")
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

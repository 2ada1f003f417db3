package invoice

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/household-server/internal/handlers/v1/apiutil"
)

// DefaultForecastMonths is used when months is omitted.
const DefaultForecastMonths = 6

type ForecastInvoicesInput struct {
	CardPath
	Months int `query:"months" minimum:"0" maximum:"24" doc:"Number of cycles starting with the open one, defaults to 6"`
}

type ForecastInvoicesResponseBody struct {
	Invoices []Invoice `json:"invoices"`
}

type ForecastInvoicesOutput struct {
	Body ForecastInvoicesResponseBody
}

// ForecastInvoicesHandler handles GET /v1/households/{householdID}/cards/{cardID}/invoices.
type ForecastInvoicesHandler struct {
	InvoiceService invoiceService
}

func NewForecastInvoicesHandler(svc invoiceService) *ForecastInvoicesHandler {
	return &ForecastInvoicesHandler{InvoiceService: svc}
}

func (h *ForecastInvoicesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "forecast-invoices",
		Method:      http.MethodGet,
		Path:        "/v1/households/{householdID}/cards/{cardID}/invoices",
		Summary:     "Forecast upcoming invoices",
		Description: "Returns consecutive invoices starting with the open one, including installments already scheduled.",
		Tags:        []string{"Cards"},
	}, h.handle)
}

func (h *ForecastInvoicesHandler) handle(ctx context.Context, input *ForecastInvoicesInput) (*ForecastInvoicesOutput, error) {
	household, card, err := input.parse()
	if err != nil {
		return nil, err
	}
	months := input.Months
	if months == 0 {
		months = DefaultForecastMonths
	}

	invoices, err := h.InvoiceService.Forecast(ctx, household, card, months)
	if err != nil {
		return nil, apiutil.Error(ctx, err, "failed to forecast invoices")
	}

	resp := ForecastInvoicesResponseBody{Invoices: make([]Invoice, len(invoices))}
	for i, inv := range invoices {
		resp.Invoices[i] = fromModel(inv)
	}
	return &ForecastInvoicesOutput{Body: resp}, nil
}

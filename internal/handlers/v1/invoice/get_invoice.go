package invoice

import (
	"context"
	"net/http"

	"cloud.google.com/go/civil"
	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/household-server/internal/calendar"
	"github.com/carson-networks/household-server/internal/handlers/v1/apiutil"
	"github.com/carson-networks/household-server/internal/logging"
)

type GetInvoiceInput struct {
	CardPath
	Reference string `query:"reference" doc:"yyyy-MM-dd to compute the invoice as of, defaults to today"`
}

type GetInvoiceOutput struct {
	Body Invoice
}

// GetInvoiceHandler handles GET /v1/households/{householdID}/cards/{cardID}/invoice.
type GetInvoiceHandler struct {
	InvoiceService invoiceService
}

func NewGetInvoiceHandler(svc invoiceService) *GetInvoiceHandler {
	return &GetInvoiceHandler{InvoiceService: svc}
}

func (h *GetInvoiceHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-invoice",
		Method:      http.MethodGet,
		Path:        "/v1/households/{householdID}/cards/{cardID}/invoice",
		Summary:     "Get the open invoice of a card",
		Description: "Computes the billing cycle that contains the reference date and the charges that fall in it.",
		Tags:        []string{"Cards"},
	}, h.handle)
}

func (h *GetInvoiceHandler) handle(ctx context.Context, input *GetInvoiceInput) (*GetInvoiceOutput, error) {
	household, card, err := input.parse()
	if err != nil {
		return nil, err
	}

	var reference *civil.Date
	if input.Reference != "" {
		d, err := calendar.Parse(input.Reference)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid reference", err)
		}
		reference = &d
	}

	inv, err := h.InvoiceService.Invoice(ctx, household, card, reference)
	if err != nil {
		return nil, apiutil.Error(ctx, err, "failed to compute invoice")
	}
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("closingDate", calendar.Format(inv.ClosingDate))
		logData.AddData("invoiceTransactionCount", len(inv.Transactions))
	}
	return &GetInvoiceOutput{Body: fromModel(inv)}, nil
}

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/household-server/internal/handlers/v1/account"
	"github.com/carson-networks/household-server/internal/handlers/v1/calendar"
	"github.com/carson-networks/household-server/internal/handlers/v1/card"
	"github.com/carson-networks/household-server/internal/handlers/v1/invoice"
	"github.com/carson-networks/household-server/internal/handlers/v1/status"
	"github.com/carson-networks/household-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/household-server/internal/logging"
	"github.com/carson-networks/household-server/internal/operator"
	"github.com/carson-networks/household-server/internal/service"
)

const shutdownTimeout = 15 * time.Second

type Rest struct {
	Logger         *logrus.Logger
	Port           string
	StorageBackend string
	Service        *service.Service
	Operator       *operator.OperatorDelegator
}

// Handler builds the mux with the status endpoint and every v1 operation.
func (r *Rest) Handler() http.Handler {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler(r.StorageBackend)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	api := humago.New(mux, huma.DefaultConfig("Household Server", "1.0.0"))
	api.UseMiddleware(logging.HumaMiddleware(r.Logger))

	transaction.NewCreateTransactionHandler(r.Operator).Register(api)
	transaction.NewListTransactionsHandler(r.Service.Transaction).Register(api)
	transaction.NewGetTransactionHandler(r.Service.Transaction).Register(api)
	transaction.NewUpdateTransactionHandler(r.Operator).Register(api)
	transaction.NewDeleteTransactionHandler(r.Operator).Register(api)

	account.NewCreateAccountHandler(r.Operator).Register(api)
	account.NewListAccountsHandler(r.Service.Account).Register(api)

	card.NewCreateCardHandler(r.Operator).Register(api)
	card.NewListCardsHandler(r.Service.Card).Register(api)

	invoice.NewGetInvoiceHandler(r.Service.Invoice).Register(api)
	invoice.NewForecastInvoicesHandler(r.Service.Invoice).Register(api)

	calendar.NewMonthViewHandler(r.Service.Calendar).Register(api)

	return mux
}

// Serve listens until ctx is canceled, then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Handler(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.shutdown error")
		return err
	}
	return nil
}

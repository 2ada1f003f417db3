package status

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/carson-networks/household-server/internal/logging"
)

type Handler struct {
	StorageBackend string
}

type response struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}

func NewHandler(storageBackend string) Handler {
	return Handler{StorageBackend: storageBackend}
}

func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	}

	logData.AddData("storage", h.StorageBackend)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(response{Status: "ok", Storage: h.StorageBackend})
}

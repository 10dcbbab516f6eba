package barcode

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=barcode_test

type productLookup interface {
	Lookup(ctx context.Context, code string) (*Product, error)
}

type Handler struct {
	lookup productLookup
}

func NewHandler(lookup productLookup) *Handler {
	return &Handler{
		lookup: lookup,
	}
}

func (h *Handler) HandleLookup(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.barcode.lookup")
	defer span.End()

	barcode := mux.Vars(r)["barcode"]
	if !ValidBarcode(barcode) {
		http.Error(w, ErrInvalidBarcode.Error(), http.StatusBadRequest)
		return
	}

	product, err := h.lookup.Lookup(ctx, barcode)
	if err != nil {
		if errors.Is(err, ErrLookupTimeout) {
			http.Error(w, err.Error(), http.StatusGatewayTimeout)
			return
		}
		log.Errorf("barcode lookup %s: %s", barcode, err)
		pkg.WriteErrorResponse(w, err, "barcode lookup failed")
		return
	}

	productJson, err := json.Marshal(product)
	if err != nil {
		log.Errorf("marshal product: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, productJson)
}

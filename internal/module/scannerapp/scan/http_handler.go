package scan

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/tsel-ticketmaster/tm-scan/internal/pkg/middleware"
	"github.com/tsel-ticketmaster/tm-scan/pkg/errors"
	publicMiddleware "github.com/tsel-ticketmaster/tm-scan/pkg/middleware"
	"github.com/tsel-ticketmaster/tm-scan/pkg/response"
	"github.com/tsel-ticketmaster/tm-scan/pkg/status"
)

type HTTPHandler struct {
	Validate    *validator.Validate
	ScanUseCase ScanUseCase
}

func InitHTTPHandler(router *mux.Router, scannerSession *middleware.ScannerSession, validate *validator.Validate, scanUseCase ScanUseCase) {
	handler := &HTTPHandler{
		Validate:    validate,
		ScanUseCase: scanUseCase,
	}

	router.HandleFunc("/tm-scan/v1/scannerapp/scans", publicMiddleware.SetRouteChain(handler.SubmitScan, scannerSession.Verify)).Methods(http.MethodPost)
}

func (handler HTTPHandler) validate(ctx context.Context, payload interface{}) error {
	err := handler.Validate.StructCtx(ctx, payload)
	if err == nil {
		return nil
	}

	errorFields := err.(validator.ValidationErrors)

	errMessages := make([]string, len(errorFields))

	for k, errorField := range errorFields {
		errMessages[k] = fmt.Sprintf("invalid '%s' with value '%v'", errorField.Field(), errorField.Value())
	}

	errorMessage := strings.Join(errMessages, ", ")

	return fmt.Errorf(errorMessage)
}

func (handler HTTPHandler) SubmitScan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := SubmitScanRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.JSON(w, http.StatusUnprocessableEntity, response.RESTEnvelope{
			Status:  status.UNPROCESSABLE_ENTITY,
			Message: err.Error(),
		})

		return
	}

	if req.TicketID == "" {
		req.TicketID = ExtractTicketID(req.RawPayload)
	}

	if err := handler.validate(ctx, req); err != nil {
		response.JSON(w, http.StatusBadRequest, response.RESTEnvelope{
			Status:  status.BAD_REQUEST,
			Message: err.Error(),
		})

		return
	}

	resp, err := handler.ScanUseCase.SubmitScan(ctx, req)
	if err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
			Status:  ae.Status,
			Message: ae.Message,
		})

		return
	}
	response.JSON(w, http.StatusCreated, response.RESTEnvelope{
		Status:  status.CREATED,
		Message: "scan attempt has been recorded",
		Data:    resp,
		Meta:    nil,
	})

}

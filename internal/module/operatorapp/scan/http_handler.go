package scan

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
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

func InitHTTPHandler(router *mux.Router, adminSession *middleware.AdminSession, validate *validator.Validate, scanUseCase ScanUseCase) {
	handler := &HTTPHandler{
		Validate:    validate,
		ScanUseCase: scanUseCase,
	}

	router.HandleFunc("/tm-scan/v1/operatorapp/events/{eventId}/scans", publicMiddleware.SetRouteChain(handler.GetManyScanAttempt, adminSession.Verify)).Methods(http.MethodGet)
	router.HandleFunc("/tm-scan/v1/operatorapp/events/{eventId}/admitted-count", publicMiddleware.SetRouteChain(handler.GetAdmittedCount, adminSession.Verify)).Methods(http.MethodGet)
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

func (handler HTTPHandler) GetManyScanAttempt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	qs := r.URL.Query()

	req := GetManyScanAttemptRequest{}
	req.EventID = mux.Vars(r)["eventId"]
	req.Page, _ = strconv.ParseInt(qs.Get("page"), 10, 64)
	req.Size, _ = strconv.ParseInt(qs.Get("size"), 10, 64)
	req.ValidOnly, _ = strconv.ParseBool(qs.Get("valid"))

	if req.Page == 0 {
		req.Page = 1
	}
	if req.Size == 0 {
		req.Size = 20
	}

	if err := handler.validate(ctx, req); err != nil {
		response.JSON(w, http.StatusBadRequest, response.RESTEnvelope{
			Status:  status.BAD_REQUEST,
			Message: err.Error(),
		})

		return
	}

	resp, err := handler.ScanUseCase.GetManyScanAttempt(ctx, req)
	if err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
			Status:  ae.Status,
			Message: ae.Message,
		})

		return
	}
	response.JSON(w, http.StatusOK, response.RESTEnvelope{
		Status:  status.OK,
		Message: "list of scan attempts",
		Data:    resp.Items,
		Meta: response.Pagination{
			Page:       resp.Page,
			Size:       resp.Size,
			TotalCount: resp.TotalCount,
			TotalPages: resp.TotalPages,
		},
	})

}

func (handler HTTPHandler) GetAdmittedCount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := GetAdmittedCountRequest{}
	req.EventID = mux.Vars(r)["eventId"]

	if err := handler.validate(ctx, req); err != nil {
		response.JSON(w, http.StatusBadRequest, response.RESTEnvelope{
			Status:  status.BAD_REQUEST,
			Message: err.Error(),
		})

		return
	}

	resp, err := handler.ScanUseCase.GetAdmittedCount(ctx, req)
	if err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
			Status:  ae.Status,
			Message: ae.Message,
		})

		return
	}
	response.JSON(w, http.StatusOK, response.RESTEnvelope{
		Status:  status.OK,
		Message: "admitted ticket count",
		Data:    resp,
		Meta:    nil,
	})

}

package scan

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsel-ticketmaster/tm-scan/pkg/validator"
)

type recordingScanUseCase struct {
	requests []SubmitScanRequest
	response SubmitScanResponse
}

func (u *recordingScanUseCase) SubmitScan(ctx context.Context, req SubmitScanRequest) (SubmitScanResponse, error) {
	u.requests = append(u.requests, req)
	return u.response, nil
}

func TestSubmitScanHandler_ExtractsTicketIDFromRawPayload(t *testing.T) {
	useCase := &recordingScanUseCase{response: SubmitScanResponse{Success: true, Result: ResultValid}}
	handler := HTTPHandler{Validate: validator.Get(), ScanUseCase: useCase}

	body := `{"event_id":"E1","raw_payload":"{\"ticket_id\":\"TO123\"}"}`
	r := httptest.NewRequest(http.MethodPost, "/tm-scan/v1/scannerapp/scans", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.SubmitScan(w, r)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, useCase.requests, 1)
	assert.Equal(t, "TO123", useCase.requests[0].TicketID)
	assert.Equal(t, "E1", useCase.requests[0].EventID)
}

func TestSubmitScanHandler_RejectsUnresolvableTicket(t *testing.T) {
	useCase := &recordingScanUseCase{}
	handler := HTTPHandler{Validate: validator.Get(), ScanUseCase: useCase}

	body := `{"event_id":"E1","raw_payload":"{\"foo\":\"bar\"}"}`
	r := httptest.NewRequest(http.MethodPost, "/tm-scan/v1/scannerapp/scans", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.SubmitScan(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, useCase.requests)
}

func TestSubmitScanHandler_RejectsMalformedBody(t *testing.T) {
	useCase := &recordingScanUseCase{}
	handler := HTTPHandler{Validate: validator.Get(), ScanUseCase: useCase}

	r := httptest.NewRequest(http.MethodPost, "/tm-scan/v1/scannerapp/scans", strings.NewReader("{"))
	w := httptest.NewRecorder()

	handler.SubmitScan(w, r)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Empty(t, useCase.requests)
}

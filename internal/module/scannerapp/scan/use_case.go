package scan

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tsel-ticketmaster/tm-scan/internal/module/scannerapp/event"
	"github.com/tsel-ticketmaster/tm-scan/internal/module/scannerapp/ticket"
	"github.com/tsel-ticketmaster/tm-scan/internal/pkg/admissioncache"
	"github.com/tsel-ticketmaster/tm-scan/internal/pkg/session"
	"github.com/tsel-ticketmaster/tm-scan/pkg/errors"
	"github.com/tsel-ticketmaster/tm-scan/pkg/pubsub"
	"github.com/tsel-ticketmaster/tm-scan/pkg/status"
)

type ScanUseCase interface {
	SubmitScan(ctx context.Context, req SubmitScanRequest) (SubmitScanResponse, error)
}

type scanUseCase struct {
	logger                *logrus.Logger
	timeout               time.Duration
	ticketRepository      ticket.TicketRepository
	eventRepository       event.EventRepository
	scanAttemptRepository ScanAttemptRepository
	publisher             pubsub.Publisher
	admissionCache        admissioncache.Cache
}

type ScanUseCaseProperty struct {
	Logger                *logrus.Logger
	Timeout               time.Duration
	TicketRepository      ticket.TicketRepository
	EventRepository       event.EventRepository
	ScanAttemptRepository ScanAttemptRepository
	Publisher             pubsub.Publisher
	AdmissionCache        admissioncache.Cache
}

func NewScanUseCase(props ScanUseCaseProperty) ScanUseCase {
	return &scanUseCase{
		logger:                props.Logger,
		timeout:               props.Timeout,
		ticketRepository:      props.TicketRepository,
		eventRepository:       props.EventRepository,
		scanAttemptRepository: props.ScanAttemptRepository,
		publisher:             props.Publisher,
		admissionCache:        props.AdmissionCache,
	}
}

// SubmitScan implements ScanUseCase. One call appends exactly one
// ledger row, accepted or rejected; only infrastructure failures leave
// the ledger untouched.
func (u *scanUseCase) SubmitScan(ctx context.Context, req SubmitScanRequest) (SubmitScanResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	acc, err := session.GetAccountFromCtx(ctx)
	if err != nil {
		return SubmitScanResponse{}, err
	}

	resp, err := u.submitOnce(ctx, req, acc)
	if err == ErrDuplicateValidScan {
		// Lost a write race on the valid-scan unique index. The winner
		// has committed, so a re-evaluation records the attempt as
		// ALREADY_SCANNED.
		resp, err = u.submitOnce(ctx, req, acc)
	}

	return resp, err
}

func (u *scanUseCase) submitOnce(ctx context.Context, req SubmitScanRequest, acc session.Account) (SubmitScanResponse, error) {
	tx, err := u.ticketRepository.BeginTx(ctx)
	if err != nil {
		return SubmitScanResponse{}, err
	}

	// The row lock serializes concurrent submissions for this ticket
	// until commit; submissions for other tickets are unaffected.
	t, err := u.ticketRepository.FindByIDForUpdate(ctx, req.TicketID, tx)
	if err != nil {
		u.ticketRepository.Rollback(ctx, tx)
		return SubmitScanResponse{}, err
	}

	homeEvent, err := u.eventRepository.FindByID(ctx, t.EventID, tx)
	if err != nil {
		u.ticketRepository.Rollback(ctx, tx)
		// A ticket whose home event record is gone is unusable; report
		// it the same way as a missing ticket.
		if errors.Destruct(err).Status == status.NOT_FOUND {
			return SubmitScanResponse{}, errors.New(http.StatusNotFound, status.NOT_FOUND, fmt.Sprintf("ticket with id '%s' is not found", req.TicketID))
		}
		return SubmitScanResponse{}, err
	}

	history, err := u.scanAttemptRepository.FindManyByOrderID(ctx, t.ID, tx)
	if err != nil {
		u.ticketRepository.Rollback(ctx, tx)
		return SubmitScanResponse{}, err
	}

	now := time.Now()
	verdict := Evaluate(t, homeEvent, history, req.EventID, now)

	attempt := ScanAttempt{
		ID:         uuid.NewString(),
		OrderID:    t.ID,
		EventID:    req.EventID,
		ScannerID:  acc.ID,
		IsValid:    verdict.IsValid,
		ScanResult: verdict.Result,
		Notes:      verdict.Notes,
		ScannedAt:  now,
	}

	if err := u.scanAttemptRepository.Save(ctx, attempt, tx); err != nil {
		u.ticketRepository.Rollback(ctx, tx)
		return SubmitScanResponse{}, err
	}

	if err := u.ticketRepository.CommitTx(ctx, tx); err != nil {
		return SubmitScanResponse{}, err
	}

	if verdict.IsValid {
		attemptBuff, _ := json.Marshal(attempt)
		u.publisher.Publish(ctx, "ticket-admitted", attempt.OrderID, nil, attemptBuff)
		u.admissionCache.InvalidateCount(ctx, attempt.EventID)
	}

	resp := SubmitScanResponse{
		Success: verdict.IsValid,
		Result:  verdict.Result,
		Message: verdict.Notes,
	}

	if verdict.IsValid {
		sar := &ScanAttemptResponse{}
		sar.PopulateFromEntity(attempt)
		resp.Scan = sar
	}

	return resp, nil
}

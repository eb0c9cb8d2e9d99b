package scan

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tsel-ticketmaster/tm-scan/internal/pkg/admissioncache"
)

type ScanUseCase interface {
	GetManyScanAttempt(ctx context.Context, req GetManyScanAttemptRequest) (GetManyScanAttemptResponse, error)
	GetAdmittedCount(ctx context.Context, req GetAdmittedCountRequest) (GetAdmittedCountResponse, error)
}

type scanUseCase struct {
	logger                *logrus.Logger
	timeout               time.Duration
	scanAttemptRepository ScanAttemptRepository
	admissionCache        admissioncache.Cache
}

type ScanUseCaseProperty struct {
	Logger                *logrus.Logger
	Timeout               time.Duration
	ScanAttemptRepository ScanAttemptRepository
	AdmissionCache        admissioncache.Cache
}

func NewScanUseCase(props ScanUseCaseProperty) ScanUseCase {
	return &scanUseCase{
		logger:                props.Logger,
		timeout:               props.Timeout,
		scanAttemptRepository: props.ScanAttemptRepository,
		admissionCache:        props.AdmissionCache,
	}
}

// GetManyScanAttempt implements ScanUseCase. Pages beyond the last one
// return an empty item list with the true total, never an error.
func (u *scanUseCase) GetManyScanAttempt(ctx context.Context, req GetManyScanAttemptRequest) (GetManyScanAttemptResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	count, err := u.scanAttemptRepository.CountByEventID(ctx, req.EventID, req.ValidOnly, nil)
	if err != nil {
		return GetManyScanAttemptResponse{}, err
	}

	totalPages := (count + req.Size - 1) / req.Size

	offset := (req.Page - 1) * req.Size

	attempts, err := u.scanAttemptRepository.FindManyByEventID(ctx, req.EventID, req.ValidOnly, offset, req.Size, nil)
	if err != nil {
		return GetManyScanAttemptResponse{}, err
	}

	items := make([]ScanAttemptResponse, len(attempts))
	for k, sa := range attempts {
		items[k].PopulateFromEntity(sa)
	}

	return GetManyScanAttemptResponse{
		Items:      items,
		Page:       req.Page,
		Size:       req.Size,
		TotalCount: count,
		TotalPages: totalPages,
	}, nil
}

// GetAdmittedCount implements ScanUseCase. The count is cached; the
// scanner app invalidates the key after every valid admission.
func (u *scanUseCase) GetAdmittedCount(ctx context.Context, req GetAdmittedCountRequest) (GetAdmittedCountResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	if count, ok := u.admissionCache.GetCount(ctx, req.EventID); ok {
		return GetAdmittedCountResponse{EventID: req.EventID, AdmittedCount: count}, nil
	}

	count, err := u.scanAttemptRepository.CountByEventID(ctx, req.EventID, true, nil)
	if err != nil {
		return GetAdmittedCountResponse{}, err
	}

	u.admissionCache.SetCount(ctx, req.EventID, count)

	return GetAdmittedCountResponse{EventID: req.EventID, AdmittedCount: count}, nil
}

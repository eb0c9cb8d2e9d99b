package scan

import (
	"context"
	"database/sql"
	goerrors "errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"github.com/tsel-ticketmaster/tm-scan/pkg/errors"
	"github.com/tsel-ticketmaster/tm-scan/pkg/status"
)

// ErrDuplicateValidScan is returned by Save when the partial unique
// index on (order_id, event_id) WHERE is_valid rejects a second valid
// row. The coordinator downgrades the attempt instead of surfacing the
// race.
var ErrDuplicateValidScan = errors.New(http.StatusConflict, status.CONFLICT, "a valid scan already exists for this ticket and event")

const pgUniqueViolation = "23505"

// ScanAttemptRepository is the append-only ledger. There is
// deliberately no Update or Delete: rows are the audit trail.
type ScanAttemptRepository interface {
	Save(ctx context.Context, attempt ScanAttempt, tx *sql.Tx) error
	FindManyByOrderID(ctx context.Context, orderID string, tx *sql.Tx) ([]ScanAttempt, error)
}

type sqlCommand interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

type scanAttemptRepository struct {
	logger *logrus.Logger
	db     *sql.DB
}

func NewScanAttemptRepository(logger *logrus.Logger, db *sql.DB) ScanAttemptRepository {
	return &scanAttemptRepository{
		logger: logger,
		db:     db,
	}
}

// Save implements ScanAttemptRepository.
func (r *scanAttemptRepository) Save(ctx context.Context, attempt ScanAttempt, tx *sql.Tx) error {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := `
		INSERT INTO scan_attempt
		(
			id, order_id, event_id, scanner_id, is_valid, scan_result, notes, scanned_at
		)
		VALUES
		(
			$1, $2, $3, $4, $5, $6, $7, $8
		)
	`

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while saving scan attempt's properties")
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, attempt.ID, attempt.OrderID, attempt.EventID, attempt.ScannerID, attempt.IsValid, attempt.ScanResult, attempt.Notes, attempt.ScannedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if goerrors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrDuplicateValidScan
		}
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while saving scan attempt's properties")
	}

	return nil
}

// FindManyByOrderID implements ScanAttemptRepository. History is
// returned oldest first; the evaluator reports the earliest valid scan
// when rejecting a duplicate.
func (r *scanAttemptRepository) FindManyByOrderID(ctx context.Context, orderID string, tx *sql.Tx) ([]ScanAttempt, error) {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := `
		SELECT
			id, order_id, event_id, scanner_id, is_valid, scan_result, notes, scanned_at
		FROM scan_attempt
		WHERE
			order_id = $1
		ORDER BY scanned_at ASC
	`

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting bunch of scan attempt's properties")
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, orderID)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting bunch of scan attempt's properties")
	}

	defer rows.Close()

	var data = make([]ScanAttempt, 0)

	for rows.Next() {
		var sa ScanAttempt

		if err := rows.Scan(&sa.ID, &sa.OrderID, &sa.EventID, &sa.ScannerID, &sa.IsValid, &sa.ScanResult, &sa.Notes, &sa.ScannedAt); err != nil {
			r.logger.WithContext(ctx).WithError(err).Error()
			return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting bunch of scan attempt's properties")
		}

		data = append(data, sa)
	}

	return data, nil
}

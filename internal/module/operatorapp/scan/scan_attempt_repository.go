package scan

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/tsel-ticketmaster/tm-scan/pkg/errors"
	"github.com/tsel-ticketmaster/tm-scan/pkg/status"
)

type ScanAttemptRepository interface {
	FindManyByEventID(ctx context.Context, eventID string, validOnly bool, offset, limit int64, tx *sql.Tx) ([]ScanAttempt, error)
	CountByEventID(ctx context.Context, eventID string, validOnly bool, tx *sql.Tx) (int64, error)
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

// FindManyByEventID implements ScanAttemptRepository. Results are
// newest first for the operator dashboard.
func (r *scanAttemptRepository) FindManyByEventID(ctx context.Context, eventID string, validOnly bool, offset, limit int64, tx *sql.Tx) ([]ScanAttempt, error) {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := `
		SELECT
			sa.id, sa.order_id, sa.event_id, e.name, sa.scanner_id, sa.is_valid,
			sa.scan_result, sa.notes, sa.scanned_at,
			t.customer_name, t.customer_email, t.quantity
		FROM scan_attempt sa
		JOIN ticket t ON t.id = sa.order_id
		JOIN event e ON e.id = sa.event_id
		WHERE
			sa.event_id = $1
		AND
			($2 = false OR sa.is_valid = true)
		ORDER BY sa.scanned_at DESC
		OFFSET $3
		LIMIT $4
	`

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting bunch of scan attempt's properties")
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, eventID, validOnly, offset, limit)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting bunch of scan attempt's properties")
	}

	defer rows.Close()

	var data = make([]ScanAttempt, 0)

	for rows.Next() {
		var sa ScanAttempt

		if err := rows.Scan(
			&sa.ID, &sa.OrderID, &sa.EventID, &sa.EventName, &sa.ScannerID, &sa.IsValid,
			&sa.ScanResult, &sa.Notes, &sa.ScannedAt,
			&sa.CustomerName, &sa.CustomerEmail, &sa.TicketQuantity,
		); err != nil {
			r.logger.WithContext(ctx).WithError(err).Error()
			return nil, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting bunch of scan attempt's properties")
		}

		data = append(data, sa)
	}

	return data, nil
}

// CountByEventID implements ScanAttemptRepository.
func (r *scanAttemptRepository) CountByEventID(ctx context.Context, eventID string, validOnly bool, tx *sql.Tx) (int64, error) {
	var cmd sqlCommand = r.db

	if tx != nil {
		cmd = tx
	}

	query := `
		SELECT count(id)
		FROM scan_attempt
		WHERE
			event_id = $1
		AND
			($2 = false OR is_valid = true)
		LIMIT 1
	`

	stmt, err := cmd.PrepareContext(ctx, query)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return 0, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while counting scan attempt's properties")
	}
	defer stmt.Close()

	row := stmt.QueryRowContext(ctx, eventID, validOnly)

	var count int64

	err = row.Scan(&count)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return 0, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while counting scan attempt's properties")
	}

	return count, nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/domain"
	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/port"

	"github.com/lib/pq"
)

type sqlGlobusShareRepository struct {
	db SQLQuerier
}

// NewSqlGlobusShareRepository creates sqlGlobusShareRepository that implements
// port.GlobusShareRepository. The primary key on owner is what serializes
// concurrent share creation; every conditional update below reports a lost
// race through a domain error instead of succeeding silently.
func NewSqlGlobusShareRepository(db SQLQuerier) port.GlobusShareRepository {
	return &sqlGlobusShareRepository{
		db: db,
	}
}

// FindByOwner finds the share record of an owner
func (s *sqlGlobusShareRepository) FindByOwner(ctx context.Context, owner string) (*domain.GlobusShare, error) {
	query := selectShareQuery + ` WHERE owner = $1`

	return scanShare(s.db.QueryRowContext(ctx, query, owner))
}

// Create inserts a new share record; a duplicate owner key means another
// caller claimed the share first
func (s *sqlGlobusShareRepository) Create(ctx context.Context, share domain.GlobusShare) error {
	query := `INSERT INTO globus_shares (owner, shared_endpoint_id, share_link, registered_submission_ids, created_at)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err := s.db.ExecContext(ctx, query,
		share.Owner,
		share.SharedEndpointID,
		share.ShareLink,
		pq.Array(share.RegisteredSubmissionIDs),
		share.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("share for %s: %w", share.Owner, domain.ErrAlreadyExists)
		}
		return fmt.Errorf("error inserting share record: %w", err)
	}
	return nil
}

// SetEndpoint records the provisioned endpoint on the owner's share
func (s *sqlGlobusShareRepository) SetEndpoint(ctx context.Context, owner, sharedEndpointID, shareLink string) error {
	query := `UPDATE globus_shares SET shared_endpoint_id = $1, share_link = $2 WHERE owner = $3`

	result, err := s.db.ExecContext(ctx, query, sharedEndpointID, shareLink, owner)
	if err != nil {
		return fmt.Errorf("error updating share record: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrShareNotFound
	}

	return nil
}

// AddSubmission registers the submission with the owner's share in a single
// statement, idempotently, and returns the updated record. No matching row
// means the share was torn down concurrently.
func (s *sqlGlobusShareRepository) AddSubmission(ctx context.Context, owner, submissionID string) (*domain.GlobusShare, error) {
	query := `UPDATE globus_shares
	          SET registered_submission_ids = CASE
	                  WHEN $2 = ANY(registered_submission_ids) THEN registered_submission_ids
	                  ELSE array_append(registered_submission_ids, $2)
	              END
	          WHERE owner = $1
	          RETURNING owner, shared_endpoint_id, share_link, registered_submission_ids, created_at`

	return scanShare(s.db.QueryRowContext(ctx, query, owner, submissionID))
}

// RemoveSubmission deregisters the submission from the owner's share
func (s *sqlGlobusShareRepository) RemoveSubmission(ctx context.Context, owner, submissionID string) error {
	query := `UPDATE globus_shares
	          SET registered_submission_ids = array_remove(registered_submission_ids, $2)
	          WHERE owner = $1`

	result, err := s.db.ExecContext(ctx, query, owner, submissionID)
	if err != nil {
		return fmt.Errorf("error updating share record: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrShareNotFound
	}

	return nil
}

// DeleteIfUnused removes the share only while its registration set is empty
// and returns the removed record. At most one caller can win this removal.
func (s *sqlGlobusShareRepository) DeleteIfUnused(ctx context.Context, owner string) (*domain.GlobusShare, error) {
	query := `DELETE FROM globus_shares
	          WHERE owner = $1 AND cardinality(registered_submission_ids) = 0
	          RETURNING owner, shared_endpoint_id, share_link, registered_submission_ids, created_at`

	return scanShare(s.db.QueryRowContext(ctx, query, owner))
}

// DeleteByOwner removes the share record unconditionally; used to roll back a
// claim after a provisioning failure
func (s *sqlGlobusShareRepository) DeleteByOwner(ctx context.Context, owner string) error {
	query := `DELETE FROM globus_shares WHERE owner = $1`

	if _, err := s.db.ExecContext(ctx, query, owner); err != nil {
		return fmt.Errorf("error deleting share record: %w", err)
	}
	return nil
}

const selectShareQuery = `SELECT owner, shared_endpoint_id, share_link, registered_submission_ids, created_at
                          FROM globus_shares`

func scanShare(row *sql.Row) (*domain.GlobusShare, error) {
	var share domain.GlobusShare
	var submissionIDs pq.StringArray
	var createdAt time.Time

	err := row.Scan(
		&share.Owner,
		&share.SharedEndpointID,
		&share.ShareLink,
		&submissionIDs,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrShareNotFound
		}
		return nil, err
	}

	share.RegisteredSubmissionIDs = submissionIDs
	share.CreatedAt = createdAt
	return &share, nil
}

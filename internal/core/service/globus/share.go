package globus

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"time"

	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/domain"
)

// getOrCreateShare resolves the owner's share record, claiming and
// provisioning one when none exists. The uniqueness constraint on the owner
// key is the only synchronization primitive: a lost insert race, a lost
// conditional update and an empty conditional removal are all detectable,
// and each one sends the caller back around the loop instead of
// double-provisioning or handing out a torn-down share.
func (s *globusService) getOrCreateShare(ctx context.Context, owner, submissionID string) (*domain.GlobusShare, error) {
	waited := 0

	for {
		share, err := s.shares.FindByOwner(ctx, owner)
		if err != nil {
			if !errors.Is(err, domain.ErrShareNotFound) {
				return nil, err
			}

			candidate := domain.GlobusShare{
				Owner:                   owner,
				RegisteredSubmissionIDs: []string{submissionID},
				CreatedAt:               time.Now().UTC(),
			}
			if err := s.shares.Create(ctx, candidate); err != nil {
				if errors.Is(err, domain.ErrAlreadyExists) {
					// Another request claimed the owner key first. Re-read
					// and fall into the waiting branch below.
					continue
				}
				return nil, err
			}

			return s.provisionShare(ctx, owner)
		}

		if share.SharedEndpointID == "" {
			// Another request holds the claim and is still provisioning.
			if waited >= s.cfg.SharePollAttempts {
				return nil, fmt.Errorf("%w: owner %s", domain.ErrShareWaitExpired, owner)
			}
			waited++
			time.Sleep(s.cfg.SharePollInterval)
			continue
		}

		updated, err := s.shares.AddSubmission(ctx, owner, submissionID)
		if err != nil {
			if errors.Is(err, domain.ErrShareNotFound) {
				// The share was torn down between the read and the update.
				// Start over, including a fresh waiting budget.
				waited = 0
				continue
			}
			return nil, err
		}

		return updated, nil
	}
}

// provisionShare runs the winning claimant's side effects. Any failure
// deletes the freshly claimed record so the next caller starts clean.
func (s *globusService) provisionShare(ctx context.Context, owner string) (*domain.GlobusShare, error) {
	share, err := s.createShare(ctx, owner)
	if err != nil {
		if delErr := s.shares.DeleteByOwner(ctx, owner); delErr != nil {
			s.logger.Error("failed to roll back share record after provisioning failure",
				"owner", owner, "error", delErr)
		}
		return nil, err
	}

	s.logger.Info("shared endpoint provisioned", "owner", owner, "endpointID", share.SharedEndpointID)

	return share, nil
}

func (s *globusService) createShare(ctx context.Context, owner string) (*domain.GlobusShare, error) {
	if err := s.staging.EnsureDir(filepath.Join(s.cfg.BaseUploadDir, owner)); err != nil {
		return nil, fmt.Errorf("creating owner upload directory: %w", err)
	}

	// The transfer API addresses the directory relative to the host
	// endpoint, always with forward slashes.
	hostPath := path.Join(s.cfg.HostEndpointBaseDir, owner) + "/"
	displayName := fmt.Sprintf("Submission uploads for %s", owner)
	description := "Shared endpoint for submitting data files"

	endpointID, err := s.transfer.CreateShare(ctx, hostPath, displayName, description)
	if err != nil {
		return nil, err
	}

	if err := s.transfer.AddAllAuthenticatedUsersACL(ctx, endpointID); err != nil {
		if delErr := s.transfer.DeleteEndpoint(ctx, endpointID); delErr != nil {
			s.logger.Error("failed to remove endpoint after acl failure",
				"owner", owner, "endpointID", endpointID, "error", delErr)
		}
		return nil, err
	}

	shareLink := fmt.Sprintf(s.cfg.ShareURLFormat, endpointID)
	if err := s.shares.SetEndpoint(ctx, owner, endpointID, shareLink); err != nil {
		return nil, err
	}

	return s.shares.FindByOwner(ctx, owner)
}

// UnregisterSubmission removes the submission from the owner's share and
// tears the shared endpoint down when no submission remains. The conditional
// removal guarantees exactly one caller wins the teardown even when the last
// two submissions unregister concurrently.
func (s *globusService) UnregisterSubmission(ctx context.Context, owner, submissionID string) error {
	if err := s.shares.RemoveSubmission(ctx, owner, submissionID); err != nil {
		if errors.Is(err, domain.ErrShareNotFound) {
			return nil
		}
		return err
	}

	removed, err := s.shares.DeleteIfUnused(ctx, owner)
	if err != nil {
		if errors.Is(err, domain.ErrShareNotFound) {
			// Either another caller won the removal or the share picked up
			// a new registration. No teardown either way.
			return nil
		}
		return err
	}

	if removed.SharedEndpointID != "" {
		if err := s.transfer.DeleteEndpoint(ctx, removed.SharedEndpointID); err != nil {
			return err
		}
	}

	s.logger.Info("shared endpoint torn down", "owner", owner, "endpointID", removed.SharedEndpointID)

	return nil
}

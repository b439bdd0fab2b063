package submission

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/config"
	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/domain"
	"github.com/EMBL-EBI-SUBS/file-upload-service/internal/core/port"
)

// statusDraft is the only submission status that still accepts file changes.
const statusDraft = "Draft"

type client struct {
	http *http.Client
	cfg  config.SubsAPIConfig
}

// NewClient creates the client for the external submissions API
func NewClient(cfg config.SubsAPIConfig) port.SubmissionService {
	return &client{
		http: &http.Client{Timeout: cfg.RequestTimeout},
		cfg:  cfg,
	}
}

// GetStatus looks up the current status of a submission
func (c *client) GetStatus(ctx context.Context, submissionID, jwtToken string) (string, error) {
	uri := fmt.Sprintf(c.cfg.StatusURIFormat, c.cfg.Host, submissionID)

	var body struct {
		Status string `json:"status"`
	}
	if err := c.getJSON(ctx, uri, jwtToken, submissionID, &body); err != nil {
		return "", err
	}

	return body.Status, nil
}

// IsModifiable reports whether the submission still accepts file changes
func (c *client) IsModifiable(ctx context.Context, submissionID, jwtToken string) (bool, error) {
	status, err := c.GetStatus(ctx, submissionID, jwtToken)
	if err != nil {
		return false, err
	}
	return status == statusDraft, nil
}

// GetTeamName looks up the team a submission belongs to
func (c *client) GetTeamName(ctx context.Context, submissionID, jwtToken string) (string, error) {
	uri := fmt.Sprintf(c.cfg.SubmissionURIFormat, c.cfg.Host, submissionID)

	var body struct {
		Team struct {
			Name string `json:"name"`
		} `json:"team"`
	}
	if err := c.getJSON(ctx, uri, jwtToken, submissionID, &body); err != nil {
		return "", err
	}

	return body.Team.Name, nil
}

func (c *client) getJSON(ctx context.Context, uri, jwtToken, submissionID string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return fmt.Errorf("building submissions api request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+jwtToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: calling submissions api: %v", domain.ErrExternalAPI, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrSubmissionNotFound, submissionID)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: submissions api rejected the token", domain.ErrUnauthorized)
	default:
		return fmt.Errorf("%w: submissions api returned %d", domain.ErrExternalAPI, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding submissions api response: %v", domain.ErrExternalAPI, err)
	}

	return nil
}

// Package notify delivers scheduling notifications to the external
// messaging service. The core only emits the job and its assignments;
// formatting and delivery to companies and labourers happen downstream.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shiftcrew/shiftcrew/internal/domain"
)

// Notifier is the contract for announcing a newly created job schedule.
type Notifier interface {
	ScheduleCreated(ctx context.Context, job domain.Job, assignments []domain.Assignment) error
}

// HTTPNotifier implements Notifier against the notification webhook.
type HTTPNotifier struct {
	baseURL *url.URL
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPNotifier constructs a new HTTP-backed notifier.
func NewHTTPNotifier(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) (*HTTPNotifier, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse notify url: %w", err)
	}
	return &HTTPNotifier{
		baseURL: parsed,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   timeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   timeout,
				ResponseHeaderTimeout: timeout,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		logger: logger,
	}, nil
}

type schedulePayload struct {
	JobID       string              `json:"jobId"`
	JobTitle    string              `json:"jobTitle"`
	CompanyID   string              `json:"companyId"`
	StartDate   string              `json:"startDate"`
	EndDate     string              `json:"endDate"`
	Assignments []assignmentPayload `json:"assignments"`
}

type assignmentPayload struct {
	AssignmentID string `json:"assignmentId"`
	LabourerID   string `json:"labourerId"`
	SkillID      string `json:"skillId"`
	Date         string `json:"date"`
}

// ScheduleCreated posts the schedule to the notification service.
func (n *HTTPNotifier) ScheduleCreated(ctx context.Context, job domain.Job, assignments []domain.Assignment) error {
	payload := schedulePayload{
		JobID:     job.ID,
		JobTitle:  job.Title,
		CompanyID: job.CompanyID,
		StartDate: job.StartDate.Format("2006-01-02"),
		EndDate:   job.EndDate.Format("2006-01-02"),
	}
	for _, a := range assignments {
		payload.Assignments = append(payload.Assignments, assignmentPayload{
			AssignmentID: a.ID,
			LabourerID:   a.LabourerID,
			SkillID:      a.SkillID,
			Date:         a.Date.Format("2006-01-02"),
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode schedule notification: %w", err)
	}

	endpoint := n.baseURL.ResolveReference(&url.URL{Path: "/notifications/schedules"})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("X-API-Key", n.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		n.logger.Warn("notify: unexpected status",
			zap.Int("status", resp.StatusCode),
			zap.String("job_id", job.ID))
		return fmt.Errorf("notify: upstream returned %d", resp.StatusCode)
	}
	return nil
}

package deadline

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// Client is a thin client for the Deadline Web Service. It only covers what
// the submit command needs: a liveness check and job submission.
type Client struct {
	BaseURL string
	client  *resty.Client
}

// JobSubmission is the request body for POST /api/jobs. JobInfo and
// PluginInfo are the same key/value sections a .job file carries.
type JobSubmission struct {
	JobInfo    map[string]string `json:"JobInfo"`
	PluginInfo map[string]string `json:"PluginInfo"`
	AuxFiles   []string          `json:"AuxFiles"`
	IdOnly     bool              `json:"IdOnly"`
}

type submitResponse struct {
	ID string `json:"_id"`
}

// NewClient creates a Deadline Web Service client. The API key is optional;
// farms that run the web service without authentication leave it empty.
func NewClient(baseURL, apiKey string) *Client {
	client := resty.New()
	client.SetHeader("Content-Type", "application/json")
	if apiKey != "" {
		client.SetHeader("X-Deadline-ApiKey", apiKey)
	}

	return &Client{
		BaseURL: baseURL,
		client:  client,
	}
}

// Ping checks that the web service is reachable before any files get staged.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.client.R().
		SetContext(ctx).
		Get(c.BaseURL + "/api/repository/root")
	if err != nil {
		return fmt.Errorf("failed to connect to Deadline at %s: %w", c.BaseURL, err)
	}

	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("deadline ping failed: status %d", resp.StatusCode())
	}

	return nil
}

// SubmitJob submits a job and returns the job id Deadline assigned.
func (c *Client) SubmitJob(ctx context.Context, sub JobSubmission) (string, error) {
	sub.IdOnly = true
	if sub.AuxFiles == nil {
		sub.AuxFiles = []string{}
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(sub).
		Post(c.BaseURL + "/api/jobs")
	if err != nil {
		return "", fmt.Errorf("failed to submit job: %w", err)
	}

	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusCreated {
		return "", fmt.Errorf("job submission failed: status %d: %s", resp.StatusCode(), resp.String())
	}

	var result submitResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse submission response: %w", err)
	}
	if result.ID == "" {
		return "", fmt.Errorf("deadline did not return a job id")
	}

	return result.ID, nil
}

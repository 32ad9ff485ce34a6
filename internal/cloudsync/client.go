package cloudsync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/liftlog/internal/records"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
)

var ErrProfileStoreRejected = errors.New("profile store rejected the push")

// Profile is the remote copy of one user's workout data, as stored by the
// profile store service.
type Profile struct {
	Exercises []records.Exercise `json:"exercises"`
	Workouts  []records.Entry    `json:"workouts"`
	// LastSyncTimestamp is empty when the profile was never synced
	LastSyncTimestamp string `json:"lastSyncTimestamp"`
}

func (p *Profile) Empty() bool {
	return len(p.Exercises) == 0 && len(p.Workouts) == 0
}

type pushRequest struct {
	UserID    string             `json:"userId"`
	Exercises []records.Exercise `json:"exercises"`
	Workouts  []records.Entry    `json:"workouts"`
}

type pushResponse struct {
	Success bool `json:"success"`
}

// Client talks to the external profile store HTTP API.
type Client struct {
	baseURL    string // e.g. https://profiles.example.com/api
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// Push uploads the user's full local data set, replacing the remote profile.
func (c *Client) Push(
	ctx context.Context,
	userID string,
	exercises []records.Exercise,
	workouts []records.Entry,
) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "cloudsync.client.push")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("exercises", len(exercises)),
		attribute.Int("workouts", len(workouts)),
	)

	reqJson, err := json.Marshal(pushRequest{
		UserID:    userID,
		Exercises: exercises,
		Workouts:  workouts,
	})
	if err != nil {
		return fmt.Errorf("marshal push request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost,
		c.baseURL+"/profile/workouts",
		bytes.NewReader(reqJson),
	)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("profile store push: unexpected status %d", resp.StatusCode)
	}

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read profile store response: %w", err)
	}

	var pushResp pushResponse
	if err := json.Unmarshal(respBytes, &pushResp); err != nil {
		return fmt.Errorf("unmarshal profile store response: %w", err)
	}
	if !pushResp.Success {
		return ErrProfileStoreRejected
	}

	log.Debugf("pushed %d exercises and %d workouts for [%s]", len(exercises), len(workouts), userID)
	return nil
}

// Pull downloads the remote profile. A profile store 404 is not an error,
// it is an empty profile: the user simply has no remote data yet.
func (c *Client) Pull(ctx context.Context, userID string) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "cloudsync.client.pull")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	pullUrl := fmt.Sprintf("%s/profile/workouts?user_id=%s", c.baseURL, url.QueryEscape(userID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pullUrl, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		log.Debugf("no remote profile for [%s] yet", userID)
		return &Profile{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("profile store pull: unexpected status %d", resp.StatusCode)
	}

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read profile store response: %w", err)
	}

	profile := &Profile{}
	if err := json.Unmarshal(respBytes, profile); err != nil {
		return nil, fmt.Errorf("unmarshal profile store response: %w", err)
	}

	log.Debugf("pulled %d exercises and %d workouts for [%s]", len(profile.Exercises), len(profile.Workouts), userID)
	return profile, nil
}

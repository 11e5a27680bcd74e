// Package jsearch is a thin client for the JSearch job-search API on
// RapidAPI. It maps raw postings into domain opportunities and enriches
// them with keyword-derived skill lists.
package jsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/job-search-agent/internal/types"
)

const defaultBaseURL = "https://jsearch.p.rapidapi.com"

// Client calls the JSearch /search endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	country    string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithCountry pins searches to a two-letter country code.
func WithCountry(code string) Option {
	return func(c *Client) { c.country = code }
}

// NewClient returns a JSearch client authenticated with the RapidAPI key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		country:    "us",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// searchResponse mirrors the subset of the JSearch payload we consume.
type searchResponse struct {
	Data []rawJob `json:"data"`
}

type rawJob struct {
	Title       string  `json:"job_title"`
	Employer    string  `json:"employer_name"`
	Description string  `json:"job_description"`
	City        string  `json:"job_city"`
	Country     string  `json:"job_country"`
	IsRemote    bool    `json:"job_is_remote"`
	ApplyLink   string  `json:"job_apply_link"`
	PostedAt    string  `json:"job_posted_at_datetime_utc"`
	MinSalary   float64 `json:"job_min_salary"`
	MaxSalary   float64 `json:"job_max_salary"`
}

// Search fetches up to limit postings matching the query. Results with
// neither a title nor an employer are dropped before mapping.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]types.JobOpportunity, error) {
	if limit <= 0 {
		limit = 10
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", "1")
	params.Set("num_pages", "1")
	params.Set("country", c.country)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", "jsearch.p.rapidapi.com")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	jobs := make([]types.JobOpportunity, 0, limit)
	for _, raw := range payload.Data {
		if raw.Title == "" && raw.Employer == "" {
			continue
		}
		jobs = append(jobs, mapJob(raw))
		if len(jobs) >= limit {
			break
		}
	}
	return jobs, nil
}

func mapJob(raw rawJob) types.JobOpportunity {
	job := types.JobOpportunity{
		OpportunityID:           uuid.NewString(),
		Title:                   raw.Title,
		Company:                 raw.Employer,
		Description:             raw.Description,
		RequiredSkills:          ExtractSkillKeywords(raw.Description),
		RequiredExperienceLevel: levelFromTitle(raw.Title),
		URL:                     raw.ApplyLink,
	}

	switch {
	case raw.City != "" && raw.Country != "":
		job.Location = raw.City + ", " + raw.Country
	case raw.City != "":
		job.Location = raw.City
	default:
		job.Location = raw.Country
	}

	if raw.IsRemote {
		job.RemotePolicy = "remote"
	}
	if raw.MinSalary > 0 && raw.MaxSalary > 0 {
		job.SalaryRange = strconv.FormatFloat(raw.MinSalary, 'f', 0, 64) +
			"-" + strconv.FormatFloat(raw.MaxSalary, 'f', 0, 64)
	}
	if raw.PostedAt != "" {
		if ts, err := time.Parse(time.RFC3339, raw.PostedAt); err == nil {
			job.PostedAt = &ts
		}
	}
	return job
}

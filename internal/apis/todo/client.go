// Package todo is a client for the Todoist REST API, scoped to what the
// assistant needs: listing today's tasks and adding new ones.
package todo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const defaultBaseURL = "https://api.todoist.com/rest/v2"

// todayFilter selects actionable tasks in Todoist's filter syntax.
const todayFilter = "(today | overdue) & !subtask"

var (
	// ErrMissingAPIKey is returned when no Todoist token is configured.
	ErrMissingAPIKey = errors.New("todoist api key not configured")

	// ErrUnauthorized is returned when Todoist rejects the token.
	ErrUnauthorized = errors.New("todoist rejected the api key")
)

// Task is the slice of a Todoist task the assistant cares about.
type Task struct {
	Content  string `json:"content"`
	Priority int    `json:"priority"`
	Due      *struct {
		Date string `json:"date"`
	} `json:"due"`
}

// Client talks to Todoist.
type Client struct {
	http    *retryablehttp.Client
	baseURL string
	token   string
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Todoist client with the given API token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		token:   token,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if c.http == nil {
		c.http = retryablehttp.NewClient()
		c.http.RetryMax = 2
		c.http.Logger = nil
	}

	return c
}

// TasksToday returns the cleaned contents of tasks due today or overdue,
// ordered by priority. Tasks whose content starts with "*" are section
// markers and are skipped.
func (c *Client) TasksToday(ctx context.Context) ([]string, error) {
	if c.token == "" {
		return nil, ErrMissingAPIKey
	}

	endpoint := c.baseURL + "/tasks?filter=" + url.QueryEscape(todayFilter)

	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build tasks request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach todoist: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var tasks []Task
	if err := json.NewDecoder(resp.Body).Decode(&tasks); err != nil {
		return nil, fmt.Errorf("failed to parse tasks response: %w", err)
	}

	today := c.now().Format("2006-01-02")

	kept := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		if strings.HasPrefix(task.Content, "*") {
			continue
		}
		if task.Due == nil || task.Due.Date > today {
			continue
		}
		kept = append(kept, task)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Priority < kept[j].Priority
	})

	contents := make([]string, len(kept))
	for i, task := range kept {
		contents[i] = CleanContent(task.Content)
	}

	c.logger.Debug("fetched tasks", "count", len(contents))
	return contents, nil
}

// AddTask creates a task on the default list and returns its cleaned content.
func (c *Client) AddTask(ctx context.Context, content string) (string, error) {
	if c.token == "" {
		return "", ErrMissingAPIKey
	}

	payload, err := json.Marshal(map[string]string{
		"content":     content,
		"description": "Added from ACE",
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal task: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, "POST", c.baseURL+"/tasks", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build add task request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach todoist: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", err
	}

	var created Task
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("failed to parse add task response: %w", err)
	}

	c.logger.Debug("added task", "content", created.Content)
	return CleanContent(created.Content), nil
}

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("todoist returned status %d", resp.StatusCode)
	}
	return nil
}

// CleanContent strips Todoist's markdown link syntax, turning
// "[title](https://example.com)" into "title".
func CleanContent(content string) string {
	before, _, _ := strings.Cut(content, "](")
	return strings.ReplaceAll(before, "[", "")
}

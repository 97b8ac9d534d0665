package cli

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// APIError is a non-2xx answer from the server
type APIError struct {
	HTTPStatus int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (HTTP %d): %s", e.HTTPStatus, strings.TrimSpace(e.Body))
}

type apiClient struct {
	baseURL    string
	httpClient *http.Client
}

type apiResponse struct {
	Status int
	Header http.Header
	Body   []byte
}

func (c *apiClient) do(method, path string, body io.Reader) (*apiResponse, error) {
	req, err := http.NewRequest(method, strings.TrimRight(c.baseURL, "/")+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	httpClient := c.httpClient
	if httpClient == nil {
		// /load walks the whole upstream source
		httpClient = &http.Client{Timeout: 10 * time.Minute}
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{HTTPStatus: resp.StatusCode, Body: string(data)}
	}
	return &apiResponse{Status: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jalexanderII/zero-todo/models"
	"github.com/sirupsen/logrus"
)

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API Error: %d - %s", e.StatusCode, e.Body)
}

// APIClient talks to the todo worker. It does not retry or cache.
type APIClient struct {
	BaseURL string
	H       *http.Client
	L       *logrus.Logger
	headers http.Header
}

func NewAPIClient(baseURL string, l *logrus.Logger) *APIClient {
	headers := make(http.Header)
	headers.Set("Content-Type", "application/json")
	return &APIClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		H:       &http.Client{Timeout: 10 * time.Second},
		L:       l,
		headers: headers,
	}
}

// SetAuthToken sends token as a bearer token on every later request.
func (a *APIClient) SetAuthToken(token string) {
	a.headers.Set("Authorization", "Bearer "+token)
}

func (a *APIClient) CheckHealth(ctx context.Context) (*models.HealthResponse, error) {
	var health models.HealthResponse
	if err := a.Get(ctx, "/api/health", &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// Get decodes the JSON response of endpoint into out, which may be nil.
func (a *APIClient) Get(ctx context.Context, endpoint string, out any) error {
	return a.do(ctx, http.MethodGet, endpoint, nil, out)
}

func (a *APIClient) Post(ctx context.Context, endpoint string, data, out any) error {
	return a.do(ctx, http.MethodPost, endpoint, data, out)
}

func (a *APIClient) Put(ctx context.Context, endpoint string, data, out any) error {
	return a.do(ctx, http.MethodPut, endpoint, data, out)
}

func (a *APIClient) Delete(ctx context.Context, endpoint string, out any) error {
	return a.do(ctx, http.MethodDelete, endpoint, nil, out)
}

func (a *APIClient) do(ctx context.Context, method, endpoint string, data, out any) error {
	var body io.Reader
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.BaseURL+endpoint, body)
	if err != nil {
		return err
	}
	for k, v := range a.headers {
		req.Header[k] = v
	}

	resp, err := a.H.Do(req)
	if err != nil {
		a.L.WithError(err).WithField("endpoint", endpoint).Debug("request failed")
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Body: string(msg)}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func todoPath(id int64) string {
	return "/api/todos/" + strconv.FormatInt(id, 10)
}

func (a *APIClient) ListTodos(ctx context.Context) ([]models.Todo, error) {
	todos := make([]models.Todo, 0)
	if err := a.Get(ctx, "/api/todos", &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

func (a *APIClient) GetTodo(ctx context.Context, id int64) (*models.Todo, error) {
	var todo models.Todo
	if err := a.Get(ctx, todoPath(id), &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (a *APIClient) CreateTodo(ctx context.Context, text string) (*models.Todo, error) {
	var todo models.Todo
	if err := a.Post(ctx, "/api/todos", models.CreateTodoRequest{Text: text}, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (a *APIClient) UpdateTodo(ctx context.Context, id int64, req models.UpdateTodoRequest) (*models.Todo, error) {
	var todo models.Todo
	if err := a.Put(ctx, todoPath(id), req, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (a *APIClient) DeleteTodo(ctx context.Context, id int64) error {
	return a.Delete(ctx, todoPath(id), nil)
}

// Package client talks to the arcade HTTP server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"arcade/communication"
	"arcade/game"
)

// ErrFinished means the session ended before the move arrived.
var ErrFinished = errors.New("session already finished")

// StatusError is a non-2xx reply. A 422 unwraps to game.ErrInvalidMove and a
// 409 to ErrFinished.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server replied %d: %s", e.Code, e.Message)
}

func (e *StatusError) Unwrap() error {
	switch e.Code {
	case http.StatusUnprocessableEntity:
		return game.ErrInvalidMove
	case http.StatusConflict:
		return ErrFinished
	}
	return nil
}

type Client struct {
	serverURL string
	http      *http.Client
}

// New returns a client for serverURL. A nil httpClient uses http.DefaultClient.
func New(serverURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		serverURL: strings.TrimRight(serverURL, "/"),
		http:      httpClient,
	}
}

func (c *Client) Games(ctx context.Context) ([]communication.GameInfo, error) {
	var out []communication.GameInfo
	err := c.do(ctx, http.MethodGet, "/games", nil, &out)
	return out, err
}

func (c *Client) NewSession(ctx context.Context, req communication.NewSessionRequest) (communication.SessionDTO, error) {
	var out communication.SessionDTO
	err := c.do(ctx, http.MethodPost, "/sessions", req, &out)
	return out, err
}

func (c *Client) Session(ctx context.Context, id string) (communication.SessionDTO, error) {
	var out communication.SessionDTO
	err := c.do(ctx, http.MethodGet, "/sessions/"+id, nil, &out)
	return out, err
}

// Play sends one move and returns the session state after it.
func (c *Client) Play(ctx context.Context, id string, m game.Move) (communication.SessionDTO, error) {
	var out communication.SessionDTO
	err := c.do(ctx, http.MethodPost, "/sessions/"+id+"/moves", communication.EncodeMove(m), &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.serverURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e communication.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &StatusError{Code: resp.StatusCode, Message: e.Error}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Package client provides typed REST clients for the academic backend's
// resource endpoints (estudiantes, notas, usuarios, auditoría). Every request
// runs through the auth.Transport, which attaches the bearer token and
// handles 401-triggered refreshes.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	auth "github.com/GianMarcoC/Taller-Notas-de-Estudiantes"
	goerrors "github.com/goliatone/go-errors"
)

// Client is the entry point to the resource services.
type Client struct {
	http    *http.Client
	baseURL string
	logger  auth.Logger

	Notas       *NotasService
	Estudiantes *EstudiantesService
	Usuarios    *UsuariosService
	Auditoria   *AuditoriaService
}

// New builds a client for baseURL whose requests are authenticated by
// service's transport.
func New(baseURL string, service *auth.Service) *Client {
	return NewWithHTTPClient(baseURL, auth.NewTransport(service, nil).Client())
}

// NewWithHTTPClient builds a client over a caller-supplied *http.Client,
// which is expected to already carry authentication.
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	c := &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
	}

	c.Notas = &NotasService{client: c}
	c.Estudiantes = &EstudiantesService{client: c}
	c.Usuarios = &UsuariosService{client: c}
	c.Auditoria = &AuditoriaService{client: c}

	return c
}

// WithLogger overrides the logger used for request-level diagnostics.
func (c *Client) WithLogger(logger auth.Logger) *Client {
	c.logger = logger
	return c
}

// do issues an HTTP request with an optional JSON body and decodes a 2xx
// response into out when out is non-nil. Non-2xx statuses map into the error
// taxonomy; transport failures surface as network errors.
func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to encode request body")
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to build request")
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return goerrors.Wrap(err, auth.ErrNetwork.Category, auth.ErrNetwork.Message).
			WithTextCode(auth.ErrNetwork.TextCode)
	}
	defer resp.Body.Close()

	if c.logger != nil {
		c.logger.Debug("%s %s -> %d", method, path, resp.StatusCode)
	}

	if err := statusError(resp.StatusCode, method, path); err != nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return err
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "failed to decode response body")
	}

	return nil
}

func statusError(status int, method, path string) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized:
		return auth.ErrAuthRejected
	case status == http.StatusForbidden:
		return auth.ErrRoleDenied
	case status == http.StatusNotFound:
		return goerrors.New(fmt.Sprintf("%s %s: not found", method, path), goerrors.CategoryNotFound).
			WithCode(goerrors.CodeNotFound)
	default:
		return goerrors.New(fmt.Sprintf("%s %s: unexpected status %d", method, path, status), goerrors.CategoryOperation)
	}
}

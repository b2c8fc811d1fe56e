package client

import (
	"context"
	"fmt"
	"net/http"
)

// NotasService manages grade records. Listing all grades requires profesor
// or admin; Mine returns only the caller's own grades.
type NotasService struct {
	client *Client
}

// List returns every grade visible to the caller.
func (s *NotasService) List(ctx context.Context) ([]Nota, error) {
	var notas []Nota
	if err := s.client.do(ctx, http.MethodGet, "/notas/", nil, &notas); err != nil {
		return nil, err
	}
	return notas, nil
}

// Mine returns the authenticated student's own grades.
func (s *NotasService) Mine(ctx context.Context) ([]Nota, error) {
	var notas []Nota
	if err := s.client.do(ctx, http.MethodGet, "/notas/mias", nil, &notas); err != nil {
		return nil, err
	}
	return notas, nil
}

// Create records a new grade.
func (s *NotasService) Create(ctx context.Context, input NotaInput) (*Nota, error) {
	nota := new(Nota)
	if err := s.client.do(ctx, http.MethodPost, "/notas/", input, nota); err != nil {
		return nil, err
	}
	return nota, nil
}

// Update replaces an existing grade.
func (s *NotasService) Update(ctx context.Context, id int, input NotaInput) (*Nota, error) {
	nota := new(Nota)
	if err := s.client.do(ctx, http.MethodPut, fmt.Sprintf("/notas/%d", id), input, nota); err != nil {
		return nil, err
	}
	return nota, nil
}

// Delete removes a grade.
func (s *NotasService) Delete(ctx context.Context, id int) error {
	return s.client.do(ctx, http.MethodDelete, fmt.Sprintf("/notas/%d", id), nil, nil)
}

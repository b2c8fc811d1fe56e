package client

import (
	"context"
	"fmt"
	"net/http"
)

// EstudiantesService manages the student roster.
type EstudiantesService struct {
	client *Client
}

// List returns the student roster.
func (s *EstudiantesService) List(ctx context.Context) ([]Estudiante, error) {
	var estudiantes []Estudiante
	if err := s.client.do(ctx, http.MethodGet, "/estudiantes/", nil, &estudiantes); err != nil {
		return nil, err
	}
	return estudiantes, nil
}

// Get returns a single roster entry.
func (s *EstudiantesService) Get(ctx context.Context, id int) (*Estudiante, error) {
	estudiante := new(Estudiante)
	if err := s.client.do(ctx, http.MethodGet, fmt.Sprintf("/estudiantes/%d", id), nil, estudiante); err != nil {
		return nil, err
	}
	return estudiante, nil
}

// Create adds a student to the roster.
func (s *EstudiantesService) Create(ctx context.Context, input Estudiante) (*Estudiante, error) {
	estudiante := new(Estudiante)
	if err := s.client.do(ctx, http.MethodPost, "/estudiantes/", input, estudiante); err != nil {
		return nil, err
	}
	return estudiante, nil
}

// Update replaces a roster entry.
func (s *EstudiantesService) Update(ctx context.Context, id int, input Estudiante) (*Estudiante, error) {
	estudiante := new(Estudiante)
	if err := s.client.do(ctx, http.MethodPut, fmt.Sprintf("/estudiantes/%d", id), input, estudiante); err != nil {
		return nil, err
	}
	return estudiante, nil
}

// Delete removes a roster entry.
func (s *EstudiantesService) Delete(ctx context.Context, id int) error {
	return s.client.do(ctx, http.MethodDelete, fmt.Sprintf("/estudiantes/%d", id), nil, nil)
}

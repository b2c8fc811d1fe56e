package client

import (
	"context"
	"fmt"
	"net/http"
)

// UsuariosService manages backend accounts. Admin only.
type UsuariosService struct {
	client *Client
}

// List returns every account.
func (s *UsuariosService) List(ctx context.Context) ([]Usuario, error) {
	var usuarios []Usuario
	if err := s.client.do(ctx, http.MethodGet, "/usuarios/", nil, &usuarios); err != nil {
		return nil, err
	}
	return usuarios, nil
}

// Update replaces an account's profile fields.
func (s *UsuariosService) Update(ctx context.Context, id int, input Usuario) (*Usuario, error) {
	usuario := new(Usuario)
	if err := s.client.do(ctx, http.MethodPut, fmt.Sprintf("/usuarios/%d", id), input, usuario); err != nil {
		return nil, err
	}
	return usuario, nil
}

// Delete removes an account.
func (s *UsuariosService) Delete(ctx context.Context, id int) error {
	return s.client.do(ctx, http.MethodDelete, fmt.Sprintf("/usuarios/%d", id), nil, nil)
}

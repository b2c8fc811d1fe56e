package client

import (
	"context"
	"net/http"
)

// AuditoriaService reads the backend audit log. Admin only, read only.
type AuditoriaService struct {
	client *Client
}

// List returns the audit log, newest first.
func (s *AuditoriaService) List(ctx context.Context) ([]AuditEntry, error) {
	var entries []AuditEntry
	if err := s.client.do(ctx, http.MethodGet, "/auditoria/", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

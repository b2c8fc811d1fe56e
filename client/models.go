package client

import (
	"time"

	auth "github.com/GianMarcoC/Taller-Notas-de-Estudiantes"
)

// Nota is a grade record on a 0-5 scale.
type Nota struct {
	ID            int     `json:"id,omitempty"`
	EstudianteID  int     `json:"estudiante_id"`
	Asignatura    string  `json:"asignatura"`
	Calificacion  float64 `json:"calificacion"`
	Periodo       string  `json:"periodo"`
	Observaciones string  `json:"observaciones,omitempty"`
	CreadoPor     int     `json:"creado_por,omitempty"`
	CreadoEn      string  `json:"creado_en,omitempty"`
}

// NotaInput is the create/update payload for a grade.
type NotaInput struct {
	EstudianteID  int     `json:"estudiante_id"`
	Asignatura    string  `json:"asignatura"`
	Calificacion  float64 `json:"calificacion"`
	Periodo       string  `json:"periodo"`
	Observaciones string  `json:"observaciones"`
}

// Estudiante is a roster entry.
type Estudiante struct {
	ID               int    `json:"id,omitempty"`
	UsuarioID        int    `json:"usuario_id,omitempty"`
	CodigoEstudiante string `json:"codigo_estudiante,omitempty"`
	Nombre           string `json:"nombre"`
}

// Usuario is a backend account as seen by admins.
type Usuario struct {
	ID     int       `json:"id,omitempty"`
	Nombre string    `json:"nombre"`
	Email  string    `json:"email"`
	Role   auth.Role `json:"rol"`
}

// AuditEntry is one row of the backend audit log.
type AuditEntry struct {
	ID        int       `json:"id"`
	UsuarioID int       `json:"usuario_id"`
	Accion    string    `json:"accion"`
	Detalle   string    `json:"detalle,omitempty"`
	Fecha     time.Time `json:"fecha"`
}

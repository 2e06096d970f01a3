package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tuanis-rp/roleplay-api/internal/server/models"
)

// usuarioRequest is the typed whole-record payload used by both create and
// update; update is a full replace, never a patch. Edad carries no required
// check: zero is a legitimate age and an int cannot distinguish the two.
type usuarioRequest struct {
	Nombre          string      `json:"nombre" validate:"required,max=50"`
	Apellido        string      `json:"apellido" validate:"required,max=50"`
	Nacionalidad    string      `json:"nacionalidad" validate:"required,max=50"`
	Estatura        string      `json:"estatura" validate:"required,max=10"`
	FechaNacimiento models.Date `json:"fecha_nacimiento" validate:"required"`
	Edad            int         `json:"edad" validate:"gte=0"`
	Cedula          string      `json:"cedula" validate:"required,max=20"`
}

func (req *usuarioRequest) toModel() *models.Usuario {
	return &models.Usuario{
		Nombre:          req.Nombre,
		Apellido:        req.Apellido,
		Nacionalidad:    req.Nacionalidad,
		Estatura:        req.Estatura,
		FechaNacimiento: req.FechaNacimiento,
		Edad:            req.Edad,
		Cedula:          req.Cedula,
	}
}

func (s *Server) decodeUsuario(w http.ResponseWriter, r *http.Request) (*usuarioRequest, bool) {
	var req usuarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, kindInvalidRequest, "cuerpo de solicitud inválido")
		return nil, false
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, kindInvalidRequest, "datos de usuario inválidos")
		return nil, false
	}
	return &req, true
}

func (s *Server) handleCreateUsuario(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeUsuario(w, r)
	if !ok {
		return
	}

	created, err := s.usuarios.Create(r.Context(), req.toModel())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListUsuarios(w http.ResponseWriter, r *http.Request) {
	usuarios, err := s.usuarios.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, usuarios)
}

func (s *Server) handleGetUsuario(w http.ResponseWriter, r *http.Request) {
	cedula := chi.URLParam(r, "cedula")

	usuario, err := s.usuarios.GetByCedula(r.Context(), cedula)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, usuario)
}

func (s *Server) handleUpdateUsuario(w http.ResponseWriter, r *http.Request) {
	cedula := chi.URLParam(r, "cedula")

	req, ok := s.decodeUsuario(w, r)
	if !ok {
		return
	}

	updated, err := s.usuarios.Update(r.Context(), cedula, req.toModel())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteUsuario(w http.ResponseWriter, r *http.Request) {
	cedula := chi.URLParam(r, "cedula")

	if err := s.usuarios.Delete(r.Context(), cedula); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"mensaje": "usuario eliminado correctamente"})
}

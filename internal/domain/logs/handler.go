package logs

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"pet-care-log/internal/middleware"
	"pet-care-log/internal/platform/logger"
	"pet-care-log/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/logs", func(lr chi.Router) {
		lr.Get("/", listLogsHandler(svc, log))
		lr.Post("/", createLogHandler(svc, log))

		lr.Get("/{id}", getLogHandler(svc, log))
		lr.Put("/{id}", updateLogHandler(svc, log))
		lr.Delete("/{id}", deleteLogHandler(svc, log))
	})
}

// logRequest es el cuerpo de create y update.
type logRequest struct {
	PetName string `json:"petName"`
	Task    string `json:"task" enums:"Fed,Walked,Vet Visit,Medication,Other"`
	Time    string `json:"time"` // RFC3339
}

// logResponse representa un log de cuidado devuelto por la API.
type logResponse struct {
	ID        int64     `json:"id"`
	PetName   string    `json:"petName"`
	Task      string    `json:"task"`
	Time      time.Time `json:"time"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// listLogsHandler godoc
// @Summary Listar logs de cuidado
// @Description Devuelve todos los logs ordenados por time descendente. Requiere sesión autenticada (cualquier rol).
// @Tags logs
// @Produce json
// @Success 200 {array} logResponse
// @Failure 401 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /logs [get]
func listLogsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := authorize(w, r, auth.OpLogsRead); !ok {
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			log.Error("list logs failed", map[string]any{"err": err.Error()})
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]logResponse, 0, len(items))
		for _, l := range items {
			out = append(out, toLogResponse(l))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// createLogHandler godoc
// @Summary Crear log de cuidado
// @Description Crea un nuevo log. Requiere rol admin; el rol se chequea antes de validar el body.
// @Tags logs
// @Accept json
// @Produce json
// @Param payload body logRequest true "Datos del log; time en formato RFC3339"
// @Success 201 {object} logResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Router /logs [post]
func createLogHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := authorize(w, r, auth.OpLogsCreate); !ok {
			return
		}

		in, ok := decodeLogRequest(w, r)
		if !ok {
			return
		}

		l, err := svc.Create(r.Context(), in)
		if err != nil {
			respondServiceError(w, log, "create log", err)
			return
		}

		writeJSON(w, http.StatusCreated, toLogResponse(l))
	}
}

// getLogHandler godoc
// @Summary Obtener un log por id
// @Tags logs
// @Produce json
// @Param id path int true "ID del log"
// @Success 200 {object} logResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /logs/{id} [get]
func getLogHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := authorize(w, r, auth.OpLogsUpdate); !ok {
			return
		}

		id, ok := parseID(w, r)
		if !ok {
			return
		}

		l, err := svc.GetByID(r.Context(), id)
		if err != nil {
			respondServiceError(w, log, "get log", err)
			return
		}

		writeJSON(w, http.StatusOK, toLogResponse(l))
	}
}

// updateLogHandler godoc
// @Summary Actualizar un log
// @Description Reemplazo completo de petName/task/time. Requiere rol admin. Siempre refresca updatedAt.
// @Tags logs
// @Accept json
// @Produce json
// @Param id path int true "ID del log"
// @Param payload body logRequest true "Datos del log; time en formato RFC3339"
// @Success 200 {object} logResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /logs/{id} [put]
func updateLogHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := authorize(w, r, auth.OpLogsUpdate); !ok {
			return
		}

		id, ok := parseID(w, r)
		if !ok {
			return
		}

		in, ok := decodeLogRequest(w, r)
		if !ok {
			return
		}

		l, err := svc.Update(r.Context(), id, in)
		if err != nil {
			respondServiceError(w, log, "update log", err)
			return
		}

		writeJSON(w, http.StatusOK, toLogResponse(l))
	}
}

// deleteLogHandler godoc
// @Summary Borrar un log
// @Description Borra por id. Requiere rol admin. Borrar un id ya borrado devuelve 404 (idempotente).
// @Tags logs
// @Produce json
// @Param id path int true "ID del log"
// @Success 200 {object} deleteResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /logs/{id} [delete]
func deleteLogHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := authorize(w, r, auth.OpLogsDelete); !ok {
			return
		}

		id, ok := parseID(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			respondServiceError(w, log, "delete log", err)
			return
		}

		writeJSON(w, http.StatusOK, deleteResponse{Deleted: true, ID: id})
	}
}

type deleteResponse struct {
	Deleted bool  `json:"deleted"`
	ID      int64 `json:"id"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// authorize corta con 401 si no hay sesión y 403 si el rol no alcanza.
// El chequeo va antes que cualquier validación de body o id.
func authorize(w http.ResponseWriter, r *http.Request, op auth.Operation) (auth.Claims, bool) {
	claims, _ := middleware.GetClaims(r.Context())
	if !claims.Authenticated() {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return auth.Claims{}, false
	}
	if !auth.Allow(op, claims) {
		writeError(w, http.StatusForbidden, "forbidden")
		return auth.Claims{}, false
	}
	return claims, true
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "id must be a positive integer")
		return 0, false
	}
	return id, true
}

func decodeLogRequest(w http.ResponseWriter, r *http.Request) (Input, bool) {
	var req logRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return Input{}, false
	}

	var t time.Time
	if req.Time != "" {
		parsed, err := time.Parse(time.RFC3339, req.Time)
		if err != nil {
			writeError(w, http.StatusBadRequest, "time must be RFC3339")
			return Input{}, false
		}
		t = parsed
	}

	return Input{
		PetName: req.PetName,
		Task:    req.Task,
		Time:    t,
	}, true
}

func respondServiceError(w http.ResponseWriter, log logger.Logger, op string, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "petName, task and time are required")
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "log not found")
	default:
		log.Error(op+" failed", map[string]any{"err": err.Error()})
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func toLogResponse(l Log) logResponse {
	return logResponse{
		ID:        l.ID,
		PetName:   l.PetName,
		Task:      l.Task,
		Time:      l.Time,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

// writeJSON/writeError están duplicados a propósito en los handlers de
// cada módulo; si aparecen en más módulos recién conviene extraerlos.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

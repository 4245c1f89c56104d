// Package transport exposes the read-model HTTP API: health, project
// snapshots, voting tallies, and catalog browsing. All mutation goes
// through the MCP command surface.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/crestline/kitforge/internal/domain/catalog"
	"github.com/crestline/kitforge/internal/domain/project"
	"github.com/crestline/kitforge/internal/domain/voting"
	"github.com/gorilla/mux"
)

// ProjectReader provides the project lookups the read API needs.
type ProjectReader interface {
	Get(ctx context.Context, id string) (*project.Project, error)
	List(ctx context.Context) ([]project.Summary, error)
}

// Router builds the read-model HTTP router.
func Router(projects ProjectReader, cat *catalog.Store, logger *slog.Logger) *mux.Router {
	h := &handler{projects: projects, catalog: cat, logger: logger}

	r := mux.NewRouter()
	r.HandleFunc("/health", h.health).Methods(http.MethodGet)
	r.HandleFunc("/api/projects", h.listProjects).Methods(http.MethodGet)
	r.HandleFunc("/api/projects/{id}", h.getProject).Methods(http.MethodGet)
	r.HandleFunc("/api/projects/{id}/tally", h.getTally).Methods(http.MethodGet)
	r.HandleFunc("/api/catalog/prompts", h.listPrompts).Methods(http.MethodGet)
	r.HandleFunc("/api/catalog/templates", h.listTemplates).Methods(http.MethodGet)
	r.HandleFunc("/api/catalog/quotes", h.listQuotes).Methods(http.MethodGet)
	return r
}

type handler struct {
	projects ProjectReader
	catalog  *catalog.Store
	logger   *slog.Logger
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (h *handler) listProjects(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.projects.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, summaries)
}

func (h *handler) getProject(w http.ResponseWriter, r *http.Request) {
	proj, err := h.projects.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, proj)
}

func (h *handler) getTally(w http.ResponseWriter, r *http.Request) {
	proj, err := h.projects.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, voting.Tally(proj))
}

func (h *handler) listPrompts(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.catalog.Prompts())
}

func (h *handler) listTemplates(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.catalog.Templates())
}

func (h *handler) listQuotes(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.catalog.Quotes())
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("write response", "error", err)
	}
}

func (h *handler) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, project.ErrProjectNotFound) {
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "project not found"})
		return
	}
	h.logger.Error("request failed", "error", err)
	h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

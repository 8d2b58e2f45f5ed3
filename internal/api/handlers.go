package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadfinder/internal/generator"
	"github.com/sells-group/leadfinder/internal/leadcsv"
	"github.com/sells-group/leadfinder/internal/model"
	"github.com/sells-group/leadfinder/internal/query"
	"github.com/sells-group/leadfinder/internal/store"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SearchRequest is the body of POST /search.
type SearchRequest struct {
	Query   string            `json:"query"`
	Filters model.LeadFilters `json:"filters"`
}

// SortRequest is the body of POST /leads/sort.
type SortRequest struct {
	Field string `json:"field"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) industries(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"industries": generator.Industries()})
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	snap, err := s.collector.Collect(r.Context())
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) snapshot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Filters.Score != "" {
		if _, err := model.ParseScore(string(req.Filters.Score)); err != nil {
			writeError(w, http.StatusBadRequest, "score must be one of High, Medium, Low")
			return
		}
	}
	s.respondToSearch(w, r, s.session.Search(req.Query, req.Filters))
}

func (s *Server) retry(w http.ResponseWriter, r *http.Request) {
	s.respondToSearch(w, r, s.session.Retry())
}

// respondToSearch answers 202 with the request id, or with ?wait=true
// blocks until the search resolves and returns the snapshot.
func (s *Server) respondToSearch(w http.ResponseWriter, r *http.Request, id uint64) {
	if wait, _ := strconv.ParseBool(r.URL.Query().Get("wait")); !wait {
		writeJSON(w, http.StatusAccepted, map[string]any{"request_id": id})
		return
	}
	snap, err := s.session.Await(r.Context(), id)
	if err != nil {
		if r.Context().Err() != nil {
			writeError(w, http.StatusServiceUnavailable, "search did not complete")
			return
		}
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) listLeads(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if v := q.Get("page_size"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "page_size must be an integer")
			return
		}
		if err := s.session.SetPageSize(size); err != nil {
			writeError(w, http.StatusBadRequest, "page_size must be one of 10, 20, 30, 40, 50")
			return
		}
	}
	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "page must be an integer")
			return
		}
		s.session.SetPage(page)
	}
	writeJSON(w, http.StatusOK, s.session.View())
}

func (s *Server) sortLeads(w http.ResponseWriter, r *http.Request) {
	var req SortRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	field, err := query.ParseSortField(req.Field)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown sort field: "+req.Field)
		return
	}
	s.session.SortBy(field)
	writeJSON(w, http.StatusOK, s.session.View())
}

func (s *Server) getLead(w http.ResponseWriter, r *http.Request) {
	lead, err := s.session.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.leadError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (s *Server) updateLead(w http.ResponseWriter, r *http.Request) {
	var lead model.Lead
	if err := json.NewDecoder(r.Body).Decode(&lead); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	lead.ID = chi.URLParam(r, "id")

	saved, err := s.session.Save(r.Context(), lead)
	if err != nil {
		s.leadError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) importCSV(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "import body too large")
		return
	}
	res, err := s.session.Import(r.Context(), string(body))
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) exportCSV(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="leads.csv"`)
	io.WriteString(w, s.session.Export()) //nolint:errcheck
}

func (s *Server) exportXLSX(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="leads.xlsx"`)
	if err := s.session.ExportXLSX(w); err != nil {
		s.log.Error("export xlsx failed", zap.Error(err))
	}
}

func (s *Server) sampleCSV(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+leadcsv.SampleFilename+`"`)
	io.WriteString(w, leadcsv.SampleCSV()) //nolint:errcheck
}

// leadError maps session errors for a single lead onto status codes.
func (s *Server) leadError(w http.ResponseWriter, err error) {
	switch {
	case eris.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "lead not found")
	case eris.Is(err, model.ErrInvalidLead):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.internalError(w, err)
	}
}

func (s *Server) internalError(w http.ResponseWriter, err error) {
	s.log.Error("request failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/alexanderramin/samplan/internal/contract"
	"github.com/alexanderramin/samplan/internal/domain"
	"github.com/go-chi/chi/v5"
)

// Handler holds the services behind the HTTP routes.
type Handler struct {
	svc    Services
	logger *slog.Logger
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	writeError(w, r, h.logger, err)
}

// --- projects ---

// ListProjects returns active projects; ?all=true includes closed ones.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	all, _ := strconv.ParseBool(r.URL.Query().Get("all"))
	projects, err := h.svc.Projects.List(r.Context(), all)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	views := make([]contract.ProjectView, 0, len(projects))
	for _, p := range projects {
		views = append(views, contract.NewProjectView(p))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req contract.CreateProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	resp, err := h.svc.Projects.Create(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Projects.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.NewProjectView(p))
}

func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Projects.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CloseProject(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Projects.Close(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.Projects.Schedule(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) PreviewSchedule(w http.ResponseWriter, r *http.Request) {
	var req contract.PreviewRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	resp, err := h.svc.Projects.Preview(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- status ---

// GetStatus reports every active project. Query: today, project (repeatable
// or comma-separated), all.
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	req, err := statusRequestFromQuery(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	resp, err := h.svc.Status.GetStatus(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetProjectStatus(w http.ResponseWriter, r *http.Request) {
	req, err := statusRequestFromQuery(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ref := chi.URLParam(r, "id")
	p, err := h.svc.Projects.GetByID(r.Context(), ref)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	req.ProjectScope = []string{p.ID}
	req.IncludeClosed = true
	resp, err := h.svc.Status.GetStatus(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if len(resp.Projects) != 1 {
		h.fail(w, r, &domain.NotFoundError{Entity: "project", ID: ref})
		return
	}
	writeJSON(w, http.StatusOK, resp.Projects[0])
}

func statusRequestFromQuery(r *http.Request) (contract.StatusRequest, error) {
	q := r.URL.Query()
	req := contract.NewStatusRequest()
	if s := q.Get("today"); s != "" {
		today, err := domain.ParseDate(s)
		if err != nil {
			return req, err
		}
		req.Today = &today
	}
	for _, v := range q["project"] {
		for _, ref := range strings.Split(v, ",") {
			if ref = strings.TrimSpace(ref); ref != "" {
				req.ProjectScope = append(req.ProjectScope, ref)
			}
		}
	}
	req.IncludeClosed, _ = strconv.ParseBool(q.Get("all"))
	return req, nil
}

// --- activities ---

func (h *Handler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	var req contract.UpdateActivityRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := domain.ValidateStruct(req); err != nil {
		h.fail(w, r, err)
		return
	}
	status, err := domain.ParseActivityStatus(req.Status)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	a, err := h.svc.Activities.SetStatus(r.Context(), chi.URLParam(r, "id"), status, req.Progress)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.NewActivityView(a))
}

// --- blockers ---

func (h *Handler) ListBlockers(w http.ResponseWriter, r *http.Request) {
	blockers, err := h.svc.Blockers.ListByProject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	views := make([]contract.BlockerView, 0, len(blockers))
	for _, b := range blockers {
		views = append(views, contract.NewBlockerView(b))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) OpenBlocker(w http.ResponseWriter, r *http.Request) {
	var req contract.OpenBlockerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	req.ProjectID = chi.URLParam(r, "id")
	b, err := h.svc.Blockers.Open(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, contract.NewBlockerView(b))
}

func (h *Handler) ResolveBlocker(w http.ResponseWriter, r *http.Request) {
	var req contract.ResolveBlockerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	result, err := h.svc.Blockers.Resolve(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// --- holidays ---

// ListHolidays returns the stored holidays of ?year= (default: this year).
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year := domain.Today().Year()
	if s := r.URL.Query().Get("year"); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil {
			h.fail(w, r, domain.NewInvalidInput("year", "%q is not a year", s))
			return
		}
		year = y
	}
	hs, err := h.svc.Holidays.List(r.Context(), year)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.NewHolidayViews(hs))
}

func (h *Handler) AddHoliday(w http.ResponseWriter, r *http.Request) {
	var req contract.HolidayView
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	hol := domain.Holiday{Date: req.Date, Name: req.Name, Recurring: req.Recurring}
	if err := h.svc.Holidays.Add(r.Context(), hol); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (h *Handler) ImportHolidays(w http.ResponseWriter, r *http.Request) {
	var req contract.ImportHolidaysRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := domain.ValidateStruct(req); err != nil {
		h.fail(w, r, err)
		return
	}
	result, err := h.svc.Holidays.ImportYear(r.Context(), req.Year)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	date, err := domain.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.svc.Holidays.Delete(r.Context(), date); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// internal/httpapi/handlers.go
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"brand-audit/internal/catalog"
	apperrors "brand-audit/internal/common/errors"
	"brand-audit/internal/common/validation"
	"brand-audit/internal/intake"
	"brand-audit/internal/models"
)

// PhaseInfo describes one phase in the catalog response.
type PhaseInfo struct {
	ID          models.Phase `json:"id"`
	Label       string       `json:"label"`
	Description string       `json:"description"`
}

// CatalogResponse is the body of GET /v1/catalog.
type CatalogResponse struct {
	Visual     []catalog.ChecklistItem `json:"visual"`
	Strategy   []catalog.ChecklistItem `json:"strategy"`
	Risks      []catalog.ChecklistItem `json:"risks"`
	Objectives []catalog.ChecklistItem `json:"objectives"`
	Services   []catalog.ChecklistItem `json:"services"`
	Phases     []PhaseInfo             `json:"phases"`
}

// ValidateResponse is the body of POST /v1/audits/validate.
type ValidateResponse struct {
	validation.ValidationResult
	UnknownIDs []string `json:"unknownIds,omitempty"`
}

// UpdateDraftRequest is the body of PATCH /v1/drafts/{id}.
type UpdateDraftRequest struct {
	Commands []intake.Command `json:"commands"`
}

func (rt *Router) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	resp := CatalogResponse{
		Visual:     catalog.Visual(),
		Strategy:   catalog.Strategy(),
		Risks:      catalog.Risks(),
		Objectives: catalog.Objectives(),
		Services:   catalog.Services(),
	}
	for _, p := range models.Phases {
		resp.Phases = append(resp.Phases, PhaseInfo{ID: p, Label: p.Label(), Description: p.Description()})
	}
	writeJSON(w, http.StatusOK, resp)
}

// decodeRecord reads an audit record, checking the raw document against the
// audit schema before decoding it.
func (rt *Router) decodeRecord(w http.ResponseWriter, req *http.Request) (*models.AuditRecord, *validation.ValidationResult, error) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, req.Body, rt.maxBody))
	if err != nil {
		return nil, nil, apperrors.NewInputParsingError(err)
	}

	shape, err := validation.ValidateAuditDocument(raw)
	if err != nil {
		return nil, nil, apperrors.NewInputParsingError(err)
	}
	if !shape.Valid {
		return nil, shape, nil
	}

	var record models.AuditRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, nil, apperrors.NewInputParsingError(err)
	}
	return &record, shape, nil
}

// POST /v1/audits/validate
func (rt *Router) handleValidate(w http.ResponseWriter, req *http.Request) error {
	record, shape, err := rt.decodeRecord(w, req)
	if err != nil {
		return err
	}
	if record == nil {
		writeJSON(w, http.StatusOK, ValidateResponse{ValidationResult: *shape})
		return nil
	}

	result := rt.service.Validate(record)
	writeJSON(w, http.StatusOK, ValidateResponse{
		ValidationResult: *result,
		UnknownIDs:       rt.service.WarnUnknownIDs(record),
	})
	return nil
}

// POST /v1/audits/analyze
func (rt *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	record, shape, err := rt.decodeRecord(w, req)
	if err != nil {
		return err
	}
	if record == nil {
		return apperrors.NewAuditValidationError("audit document is malformed", shape.Errors)
	}

	result, err := rt.service.Analyze(req.Context(), record)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, result)
	return nil
}

// POST /v1/drafts
func (rt *Router) handleCreateDraft(w http.ResponseWriter, req *http.Request) error {
	draft, err := rt.drafts.Create(req.Context())
	if err != nil {
		return err
	}
	w.Header().Set("Location", fmt.Sprintf("/v1/drafts/%s", draft.ID))
	writeJSON(w, http.StatusCreated, draft)
	return nil
}

// GET /v1/drafts/{id}
func (rt *Router) handleGetDraft(w http.ResponseWriter, req *http.Request) error {
	draft, err := rt.drafts.Get(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, draft)
	return nil
}

// PATCH /v1/drafts/{id}
func (rt *Router) handleUpdateDraft(w http.ResponseWriter, req *http.Request) error {
	var body UpdateDraftRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, req.Body, rt.maxBody)).Decode(&body); err != nil {
		return apperrors.NewInputParsingError(err)
	}
	if len(body.Commands) == 0 {
		return apperrors.NewInputParsingError(errors.New("commands must not be empty"))
	}

	draft, err := rt.drafts.Update(req.Context(), chi.URLParam(req, "id"), body.Commands...)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, draft)
	return nil
}

// POST /v1/drafts/{id}/submit
func (rt *Router) handleSubmitDraft(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	draft, err := rt.drafts.Get(req.Context(), id)
	if err != nil {
		return err
	}

	result, err := rt.service.Analyze(req.Context(), draft.AuditRecord())
	if err != nil {
		return err
	}

	if err := rt.drafts.Delete(req.Context(), id); err != nil {
		rt.logger.WithError(err).Warn("Submitted draft could not be deleted", map[string]interface{}{
			"draftId": id,
		})
	}
	writeJSON(w, http.StatusOK, result)
	return nil
}

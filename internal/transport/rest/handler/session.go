package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"surveyflow/internal/engine"
	"surveyflow/internal/model"
	"surveyflow/internal/service"

	"github.com/gorilla/mux"
)

// SessionHandler handles respondent session endpoints
type SessionHandler struct {
	sessionSvc *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionSvc *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc}
}

// SetAnswerRequest is the request body for answering a question
type SetAnswerRequest struct {
	Value interface{} `json:"value"`
}

// SubmitRequest is the optional request body for submitting a session
type SubmitRequest struct {
	GDPRConsent bool `json:"gdprConsent"`
}

// Start handles POST /v1/surveys/{surveyId}/sessions
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	session, snap, err := h.sessionSvc.StartSession(r.Context(), surveyID)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"sessionId": session.ID,
		"surveyId":  session.SurveyID,
		"snapshot":  snap,
	})
}

// Get handles GET /v1/sessions/{sessionId}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	snap, err := h.sessionSvc.Snapshot(r.Context(), sessionID)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snap)
}

// SetAnswer handles PUT /v1/sessions/{sessionId}/answers/{questionId}
func (h *SessionHandler) SetAnswer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["sessionId"]
	questionID := vars["questionId"]

	var req SetAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	snap, err := h.sessionSvc.SetAnswer(r.Context(), sessionID, questionID, req.Value)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snap)
}

// Next handles POST /v1/sessions/{sessionId}/next
func (h *SessionHandler) Next(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	snap, err := h.sessionSvc.Next(r.Context(), sessionID)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snap)
}

// Prev handles POST /v1/sessions/{sessionId}/prev
func (h *SessionHandler) Prev(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	snap, err := h.sessionSvc.Prev(r.Context(), sessionID)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snap)
}

// GoToStage handles POST /v1/sessions/{sessionId}/stage/{stageId}
func (h *SessionHandler) GoToStage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["sessionId"]
	stageID := vars["stageId"]

	snap, err := h.sessionSvc.GoToStage(r.Context(), sessionID, stageID)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snap)
}

// Submit handles POST /v1/sessions/{sessionId}/submit
func (h *SessionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req SubmitRequest
	if r.Body != nil {
		// body is optional, a decode failure just means no metadata
		json.NewDecoder(r.Body).Decode(&req)
	}

	meta := model.SubmissionMetadata{
		GDPRConsent: req.GDPRConsent,
		UserAgent:   r.UserAgent(),
	}
	snap, err := h.sessionSvc.Submit(r.Context(), sessionID, meta)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snap)
}

// writeSessionError maps session service errors to HTTP statuses
func writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSurveyNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, engine.ErrStageNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSessionStageBlock):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrSubmitInProgress),
		errors.Is(err, engine.ErrAlreadySubmitted):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, engine.ErrInvalidConfig):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/adrkit/internal/adrservice"
)

const maxBody = 1 << 20

// Handler holds API route handlers.
type Handler struct {
	svc *adrservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *adrservice.Service) *Handler {
	return &Handler{svc: svc}
}

// ListADRs handles GET /api/adrs.
//
//	@Summary		List ADRs, optionally filtered by a search query
//	@Tags			adrs
//	@Produce		json
//	@Param			q	query		string	false	"Substring of title or body"
//	@Success		200	{object}	ADRListResponse
//	@Security		BearerAuth
//	@Router			/adrs [get]
func (h *Handler) ListADRs(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, "list adrs", err)
		return
	}
	writeJSON(w, http.StatusOK, ADRListResponse{ADRs: rows, Total: len(rows)})
}

// GetADR handles GET /api/adrs/{filename}.
//
//	@Summary		Get a single ADR
//	@Tags			adrs
//	@Produce		json
//	@Param			filename	path		string	true	"ADR filename"
//	@Success		200			{object}	ADRDetail
//	@Failure		404			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/adrs/{filename} [get]
func (h *Handler) GetADR(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Get(r.Context(), chi.URLParam(r, "filename"))
	if err != nil {
		writeError(w, "get adr", err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// CreateADR handles POST /api/adrs.
//
//	@Summary		Create a new ADR and its record entry
//	@Tags			adrs
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CreateADRRequest	true	"ADR to create"
//	@Success		201		{object}	CreateADRResponse
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/adrs [post]
func (h *Handler) CreateADR(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	var req CreateADRRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	res, err := h.svc.Create(r.Context(), req.answers())
	if err != nil {
		writeError(w, "create adr", err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// LinkADR handles POST /api/adrs/{filename}/notes.
//
//	@Summary		Append a relationship note to an ADR and its record section
//	@Tags			adrs
//	@Accept			json
//	@Produce		json
//	@Param			filename	path		string		true	"ADR filename"
//	@Param			body		body		LinkRequest	true	"Note to append"
//	@Success		200			{object}	LinkResponse
//	@Failure		400			{object}	errResponse
//	@Failure		404			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/adrs/{filename}/notes [post]
func (h *Handler) LinkADR(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	filename := chi.URLParam(r, "filename")
	var req LinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	linked, err := h.svc.Link(r.Context(), filename, req.Note)
	if err != nil {
		writeError(w, "link adr", err)
		return
	}
	writeJSON(w, http.StatusOK, LinkResponse{Filename: filename, RecordLinked: linked})
}

// Next handles GET /api/next.
//
//	@Summary		Number the next ADR will receive
//	@Tags			adrs
//	@Produce		json
//	@Success		200	{object}	NextResponse
//	@Security		BearerAuth
//	@Router			/next [get]
func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.Next(r.Context())
	if err != nil {
		writeError(w, "next number", err)
		return
	}
	writeJSON(w, http.StatusOK, NextResponse{Number: n})
}

// Record handles GET /api/record.
//
//	@Summary		Raw record document
//	@Tags			record
//	@Produce		json
//	@Success		200	{object}	RecordResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/record [get]
func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	text, err := h.svc.Record(r.Context())
	if err != nil {
		writeError(w, "read record", err)
		return
	}
	writeJSON(w, http.StatusOK, RecordResponse{Path: h.svc.Layout().Record, Content: text})
}

package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/raymyers/golite/pkg/ast"
	"github.com/raymyers/golite/pkg/diag"
	"github.com/raymyers/golite/pkg/parser"
)

// ParseRequest is the body of every parse endpoint
type ParseRequest struct {
	Source    string `json:"source"`
	Positions bool   `json:"positions,omitempty"` // include node positions in the tree
}

// ParseResponse reports the tree and diagnostics of one parse
type ParseResponse struct {
	RequestID   string            `json:"request_id"`
	OK          bool              `json:"ok"`
	Decls       int               `json:"decls"`
	Nodes       int               `json:"nodes"`
	Diagnostics []diag.Diagnostic `json:"diagnostics"`
	AST         map[string]any    `json:"ast,omitempty"`
}

// SourceResponse carries the canonical form of the parsed program
type SourceResponse struct {
	RequestID   string            `json:"request_id"`
	OK          bool              `json:"ok"`
	Source      string            `json:"source"`
	Diagnostics []diag.Diagnostic `json:"diagnostics"`
}

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// HealthResponse answers /healthz
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type handler struct {
	config Config
	logger *slog.Logger
}

// parse runs one parse with the configured limits
func (h *handler) parse(src string) (*ast.Program, []diag.Diagnostic) {
	prog, err := parser.ParseString(src,
		parser.WithMaxDepth(h.config.MaxDepth),
		parser.WithMaxErrors(h.config.MaxErrors),
	)
	diags := diag.FromError(err)
	if diags == nil {
		diags = []diag.Diagnostic{}
	}
	return prog, diags
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Use GET", "")
		return
	}
	h.writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: h.config.Version})
}

func (h *handler) handleParse(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}
	prog, diags := h.parse(req.Source)
	h.logger.Debug("parsed source",
		"request_id", requestID(r),
		"decls", len(prog.Decls),
		"diagnostics", len(diags),
	)
	h.writeJSON(w, http.StatusOK, ParseResponse{
		RequestID:   requestID(r),
		OK:          len(diags) == 0,
		Decls:       len(prog.Decls),
		Nodes:       ast.Count(prog),
		Diagnostics: diags,
		AST:         ast.Dump(prog, req.Positions),
	})
}

func (h *handler) handleSource(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}
	prog, diags := h.parse(req.Source)
	h.writeJSON(w, http.StatusOK, SourceResponse{
		RequestID:   requestID(r),
		OK:          len(diags) == 0,
		Source:      ast.Source(prog),
		Diagnostics: diags,
	})
}

// decodeRequest reads a ParseRequest, answering the client itself on
// failure.
func (h *handler) decodeRequest(w http.ResponseWriter, r *http.Request) (ParseRequest, bool) {
	var req ParseRequest
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Use POST", "")
		return req, false
	}
	if h.config.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.config.MaxBodyBytes)
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, http.StatusRequestEntityTooLarge, "too_large", "Request body too large", "")
			return req, false
		}
		h.writeError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body", err.Error())
		return req, false
	}
	return req, true
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *handler) writeError(w http.ResponseWriter, status int, code, message, details string) {
	h.writeJSON(w, status, ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	})
}

package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/agentstation/tenantmap/internal/server/response"
	"github.com/agentstation/tenantmap/pkg/accounts"
	"github.com/agentstation/tenantmap/pkg/logging"
	"github.com/agentstation/tenantmap/pkg/sync"
)

// initRequest is the body of the plugin init call.
type initRequest struct {
	Options  map[string]any `json:"options"`
	DomainID string         `json:"domain_id"`
}

// initResult describes the options the plugin recognizes.
type initResult struct {
	Metadata struct {
		AdditionalOptionsSchema map[string]any `json:"additional_options_schema"`
	} `json:"metadata"`
}

// syncRequest is the body of the plugin sync call.
type syncRequest struct {
	Options    map[string]any      `json:"options"`
	SecretData accounts.SecretData `json:"secret_data"`
	DomainID   string              `json:"domain_id"`
	SchemaID   string              `json:"schema_id"`
}

// syncResult carries the discovered account records. Partial discovery
// still returns 200 with whatever was found.
type syncResult struct {
	Results []accounts.AccountRecord `json:"results"`
}

func (s *Server) handleInit(w http.ResponseWriter, r *http.Request) {
	var req initRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", err.Error())
		return
	}

	var result initResult
	result.Metadata.AdditionalOptionsSchema = accounts.OptionsSchema()
	response.OK(w, result)
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	var req syncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", err.Error())
		return
	}

	ctx := logging.WithLogger(r.Context(), s.logger)
	result, err := s.orchestrator.Run(ctx, accounts.ParseOptions(req.Options), req.SecretData,
		sync.WithDomainID(req.DomainID),
		sync.WithSchemaID(req.SchemaID),
	)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	records := result.Records
	if records == nil {
		records = []accounts.AccountRecord{}
	}
	response.OK(w, syncResult{Results: records})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status": "ok",
		"uptime": time.Since(s.startTime).String(),
	})
}

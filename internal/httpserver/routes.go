package httpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/citeurl-go/citeurl/engine/authority"
	"github.com/citeurl-go/citeurl/engine/rewriter"
	"github.com/citeurl-go/citeurl/engine/template"
	"github.com/citeurl-go/citeurl/internal/web/router"
)

const respCacheTTL = 5 * time.Minute

type citationDTO struct {
	Template string             `json:"template"`
	Start    int                `json:"start"`
	End      int                `json:"end"`
	Text     string             `json:"text"`
	Tokens   map[string]*string `json:"tokens"`
	URL      *string            `json:"url,omitempty"`
	Name     *string            `json:"name,omitempty"`
	IsIDForm bool               `json:"is_id_form"`
}

func toDTO(c *template.Citation) citationDTO {
	return citationDTO{
		Template: c.Template.Name,
		Start:    c.Start,
		End:      c.End,
		Text:     c.Text,
		Tokens:   c.PublicTokens(),
		URL:      c.URL,
		Name:     c.Name,
		IsIDForm: c.IsIDForm,
	}
}

type authorityDTO struct {
	Template  string        `json:"template"`
	Citations []citationDTO `json:"citations"`
}

// handleCite serves GET /cite?q=<text>&broad=<bool>.
func (s *Server) handleCite(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		router.BadRequest(w, "missing q parameter")
		return
	}
	broad := r.URL.Query().Get("broad") == "true"

	cite, ok := s.Citator().Cite(q, broad)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"found": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"found": true, "citation": toDTO(cite)})
}

type listRequest struct {
	Text string `json:"text"`
}

// handleListCites serves POST /list-cites.
func (s *Server) handleListCites(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		router.BadRequest(w, "invalid request body")
		return
	}

	key := respKey("list-cites", req.Text, false, rewriter.Policy{})
	if cached, ok := s.cachedResponse(r.Context(), key); ok {
		writeRaw(w, cached)
		return
	}

	cites := s.Citator().ListCites(req.Text, s.cfg.IDBreak)
	dtos := make([]citationDTO, 0, len(cites))
	for _, c := range cites {
		dtos = append(dtos, toDTO(c))
	}

	s.cacheAndWrite(r.Context(), w, key, map[string]any{"citations": dtos})
}

type insertRequest struct {
	Text   string          `json:"text"`
	Policy rewriter.Policy `json:"policy"`
}

// handleInsertLinks serves POST /insert-links.
func (s *Server) handleInsertLinks(w http.ResponseWriter, r *http.Request) {
	var req insertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		router.BadRequest(w, "invalid request body")
		return
	}

	key := respKey("insert-links", req.Text, false, req.Policy)
	if cached, ok := s.cachedResponse(r.Context(), key); ok {
		writeRaw(w, cached)
		return
	}

	out := s.Citator().InsertLinks(req.Text, s.cfg.IDBreak, req.Policy)
	s.cacheAndWrite(r.Context(), w, key, map[string]any{"html": out})
}

// handleAuthorities serves GET /authorities?q=<text>.
func (s *Server) handleAuthorities(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		router.BadRequest(w, "missing q parameter")
		return
	}

	auths := s.Citator().Authorities(q, s.cfg.IDBreak)
	dtos := make([]authorityDTO, 0, len(auths))
	for _, a := range auths {
		dtos = append(dtos, authorityDTOFrom(a))
	}
	writeJSON(w, http.StatusOK, map[string]any{"authorities": dtos})
}

func authorityDTOFrom(a *authority.Authority) authorityDTO {
	cites := make([]citationDTO, 0, len(a.Citations))
	for _, c := range a.Citations {
		cites = append(cites, toDTO(c))
	}
	return authorityDTO{Template: a.TemplateName, Citations: cites}
}

// handleTemplates serves GET /templates.
func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"templates": s.Citator().Names()})
}

type reloadRequest struct {
	Paths []string `json:"paths"`
}

// handleReload serves POST /admin/reload, guarded by requireAdmin.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	var req reloadRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	fresh, err := newCitatorFromPaths(req.Paths)
	if err != nil {
		router.WriteError(w, http.StatusUnprocessableEntity, "TEMPLATE_LOAD_ERROR", err.Error())
		return
	}

	s.Reload(fresh)
	writeJSON(w, http.StatusOK, map[string]any{"reloaded": true})
}

func respKey(op, text string, broad bool, policy rewriter.Policy) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%t|%+v|%s", op, broad, policy, text)
	return "httpserver:" + hex.EncodeToString(h.Sum(nil))
}

func (s *Server) cachedResponse(ctx context.Context, key string) ([]byte, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}
	return data, true
}

func (s *Server) cacheAndWrite(ctx context.Context, w http.ResponseWriter, key string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		router.InternalServerError(w, err)
		return
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, data, respCacheTTL)
	}
	writeRaw(w, data)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeRaw(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

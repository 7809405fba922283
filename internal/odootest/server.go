// Package odootest runs an in-memory Odoo JSON-RPC server for tests.
// It speaks just enough of the protocol for the gateway: authenticate,
// version, and execute_kw with the CRUD methods, answering with the
// same envelope and exception names a real server uses.
package odootest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

type rpcRequest struct {
	JSONRPC string    `json:"jsonrpc"`
	Method  string    `json:"method"`
	Params  rpcParams `json:"params"`
	ID      int       `json:"id"`
}

type rpcParams struct {
	Service string `json:"service"`
	Method  string `json:"method"`
	Args    []any  `json:"args"`
}

type rpcErrorData struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

type rpcError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Data    rpcErrorData `json:"data"`
}

// Result has no omitempty: authenticate legitimately answers false,
// and searches answer empty lists.
type rpcResponse struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      int       `json:"id"`
	Result  any       `json:"result"`
	Error   *rpcError `json:"error,omitempty"`
}

type model struct {
	label    string
	fields   map[string]map[string]any
	records  map[int]map[string]any
	order    []int
	required []string
}

// Server is the fake. DB, User and Key are the credentials it accepts.
type Server struct {
	DB    string
	User  string
	Key   string
	UID   int
	Serie string

	mu     sync.Mutex
	models map[string]*model
	nextID int
	srv    *httptest.Server
}

// New starts a fake server accepting db "test", user "admin", key
// "secret". Close it when done.
func New() *Server {
	s := &Server{
		DB:     "test",
		User:   "admin",
		Key:    "secret",
		UID:    2,
		Serie:  "18.0",
		models: map[string]*model{},
		nextID: 1,
	}
	s.srv = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

func (s *Server) URL() string { return s.srv.URL }

func (s *Server) Close() { s.srv.Close() }

// AddModel registers a model. Fields marked required:true must be
// present on create.
func (s *Server) AddModel(name, label string, fields map[string]map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := &model{label: label, fields: fields, records: map[int]map[string]any{}}
	for fname, attrs := range fields {
		if req, _ := attrs["required"].(bool); req {
			m.required = append(m.required, fname)
		}
	}
	s.models[name] = m
}

// Seed inserts a record directly, bypassing required-field checks.
func (s *Server) Seed(name string, vals map[string]any) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.models[name]
	id := s.nextID
	s.nextID++
	rec := map[string]any{"id": float64(id)}
	for k, v := range vals {
		rec[k] = v
	}
	m.records[id] = rec
	m.order = append(m.order, id)
	return id
}

// Record returns the stored record, or nil when gone.
func (s *Server) Record(name string, id int) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.models[name]; ok {
		return m.records[id]
	}
	return nil
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := rpcResponse{JSONRPC: "2.0", ID: req.ID}
	result, rpcErr := s.dispatch(req.Params)
	if rpcErr != nil {
		resp.Error = rpcErr
	} else {
		resp.Result = result
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *Server) dispatch(p rpcParams) (any, *rpcError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch p.Service {
	case "common":
		switch p.Method {
		case "authenticate":
			if len(p.Args) < 3 {
				return nil, serverError("ValueError", "authenticate needs db, login, password")
			}
			if p.Args[0] == s.DB && p.Args[1] == s.User && p.Args[2] == s.Key {
				return s.UID, nil
			}
			// Real servers answer false rather than raising here.
			return false, nil
		case "version":
			return map[string]any{"server_serie": s.Serie, "server_version": s.Serie + "+e"}, nil
		}
	case "object":
		if p.Method == "execute_kw" {
			return s.executeKw(p.Args)
		}
	}
	return nil, serverError("AttributeError", fmt.Sprintf("unknown call %s.%s", p.Service, p.Method))
}

func (s *Server) executeKw(args []any) (any, *rpcError) {
	if len(args) < 6 {
		return nil, serverError("ValueError", "execute_kw needs db, uid, password, model, method, args")
	}
	uid, _ := args[1].(float64)
	if args[0] != s.DB || int(uid) != s.UID || args[2] != s.Key {
		return nil, odooError("AccessDenied", "Access Denied")
	}

	modelName, _ := args[3].(string)
	method, _ := args[4].(string)
	pos, _ := args[5].([]any)
	kw := map[string]any{}
	if len(args) > 6 {
		kw, _ = args[6].(map[string]any)
	}

	if modelName == "ir.model" {
		return s.irModel(method, pos, kw)
	}
	m, ok := s.models[modelName]
	if !ok {
		return nil, odooError("UserError", fmt.Sprintf("Object %s doesn't exist", modelName))
	}

	switch method {
	case "search":
		ids := m.match(domainOf(pos), limitOf(kw))
		return ids, nil
	case "search_read":
		var out []map[string]any
		for _, id := range m.match(domainOf(pos), limitOf(kw)) {
			out = append(out, project(m.records[id], fieldsOf(kw)))
		}
		return out, nil
	case "read":
		ids, err := idsOf(pos)
		if err != nil {
			return nil, err
		}
		var out []map[string]any
		for _, id := range ids {
			rec, ok := m.records[id]
			if !ok {
				return nil, odooError("MissingError", missingMsg(modelName, id))
			}
			out = append(out, project(rec, fieldsOf(kw)))
		}
		return out, nil
	case "create":
		if len(pos) == 0 {
			return nil, serverError("ValueError", "create needs values")
		}
		vals, _ := pos[0].(map[string]any)
		for fname := range vals {
			if _, ok := m.fields[fname]; !ok {
				return nil, odooError("ValidationError", fmt.Sprintf("Invalid field '%s' on model '%s'", fname, modelName))
			}
		}
		for _, fname := range m.required {
			if _, ok := vals[fname]; !ok {
				return nil, odooError("ValidationError", fmt.Sprintf("The field '%s' is required", fname))
			}
		}
		id := s.nextID
		s.nextID++
		rec := map[string]any{"id": float64(id)}
		for k, v := range vals {
			rec[k] = v
		}
		m.records[id] = rec
		m.order = append(m.order, id)
		return id, nil
	case "write":
		ids, err := idsOf(pos)
		if err != nil {
			return nil, err
		}
		if len(pos) < 2 {
			return nil, serverError("ValueError", "write needs ids and values")
		}
		vals, _ := pos[1].(map[string]any)
		for fname := range vals {
			if _, ok := m.fields[fname]; !ok {
				return nil, odooError("ValidationError", fmt.Sprintf("Invalid field '%s' on model '%s'", fname, modelName))
			}
		}
		for _, id := range ids {
			rec, ok := m.records[id]
			if !ok {
				return nil, odooError("MissingError", missingMsg(modelName, id))
			}
			for k, v := range vals {
				rec[k] = v
			}
		}
		return true, nil
	case "unlink":
		ids, err := idsOf(pos)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			if _, ok := m.records[id]; !ok {
				return nil, odooError("MissingError", missingMsg(modelName, id))
			}
		}
		for _, id := range ids {
			delete(m.records, id)
			for i, oid := range m.order {
				if oid == id {
					m.order = append(m.order[:i], m.order[i+1:]...)
					break
				}
			}
		}
		return true, nil
	case "fields_get":
		return m.fields, nil
	}
	return nil, serverError("AttributeError", fmt.Sprintf("no method %s on %s", method, modelName))
}

// irModel serves the model registry from the registered models, the way
// list_models queries it.
func (s *Server) irModel(method string, pos []any, kw map[string]any) (any, *rpcError) {
	if method != "search_read" && method != "search" {
		return nil, serverError("AttributeError", "ir.model supports search/search_read only")
	}
	names := make([]string, 0, len(s.models))
	for name := range s.models {
		names = append(names, name)
	}
	// map order is fine for tests; real servers order by id anyway
	if method == "search" {
		ids := make([]int, len(names))
		for i := range names {
			ids[i] = i + 1
		}
		return ids, nil
	}
	out := make([]map[string]any, 0, len(names))
	for i, name := range names {
		out = append(out, map[string]any{
			"id":    float64(i + 1),
			"model": name,
			"name":  s.models[name].label,
		})
	}
	return out, nil
}

// match applies a conjunctive domain of [field, op, value] triples.
func (m *model) match(domain []any, limit int) []int {
	var ids []int
	for _, id := range m.order {
		rec := m.records[id]
		if matches(rec, domain) {
			ids = append(ids, id)
			if limit > 0 && len(ids) >= limit {
				break
			}
		}
	}
	if ids == nil {
		ids = []int{}
	}
	return ids
}

func matches(rec map[string]any, domain []any) bool {
	for _, t := range domain {
		triple, ok := t.([]any)
		if !ok || len(triple) != 3 {
			return false
		}
		field, _ := triple[0].(string)
		op, _ := triple[1].(string)
		want := triple[2]
		got := rec[field]
		switch op {
		case "=":
			if !looseEq(got, want) {
				return false
			}
		case "!=":
			if looseEq(got, want) {
				return false
			}
		case "ilike":
			gs, _ := got.(string)
			ws, _ := want.(string)
			if !strings.Contains(strings.ToLower(gs), strings.ToLower(ws)) {
				return false
			}
		case "in":
			arr, _ := want.([]any)
			found := false
			for _, w := range arr {
				if looseEq(got, w) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func looseEq(a, b any) bool {
	if af, ok := a.(float64); ok {
		if bf, ok := b.(float64); ok {
			return af == bf
		}
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func project(rec map[string]any, fields []string) map[string]any {
	if len(fields) == 0 {
		out := make(map[string]any, len(rec))
		for k, v := range rec {
			out[k] = v
		}
		return out
	}
	out := map[string]any{"id": rec["id"]}
	for _, f := range fields {
		if v, ok := rec[f]; ok {
			out[f] = v
		}
	}
	return out
}

func domainOf(pos []any) []any {
	if len(pos) == 0 {
		return nil
	}
	d, _ := pos[0].([]any)
	return d
}

func idsOf(pos []any) ([]int, *rpcError) {
	if len(pos) == 0 {
		return nil, serverError("ValueError", "missing ids")
	}
	arr, ok := pos[0].([]any)
	if !ok {
		return nil, serverError("ValueError", "ids must be a list")
	}
	out := make([]int, 0, len(arr))
	for _, v := range arr {
		f, ok := v.(float64)
		if !ok {
			return nil, serverError("ValueError", "ids must be integers")
		}
		out = append(out, int(f))
	}
	return out, nil
}

func fieldsOf(kw map[string]any) []string {
	arr, _ := kw["fields"].([]any)
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func limitOf(kw map[string]any) int {
	if f, ok := kw["limit"].(float64); ok {
		return int(f)
	}
	return 0
}

func missingMsg(model string, id int) string {
	return fmt.Sprintf("Record does not exist or has been deleted. (Record: %s(%d), User: 2)", model, id)
}

func odooError(class, msg string) *rpcError {
	return &rpcError{
		Code:    200,
		Message: "Odoo Server Error",
		Data:    rpcErrorData{Name: "odoo.exceptions." + class, Message: msg},
	}
}

func serverError(class, msg string) *rpcError {
	return &rpcError{
		Code:    200,
		Message: "Odoo Server Error",
		Data:    rpcErrorData{Name: "builtins." + class, Message: msg},
	}
}

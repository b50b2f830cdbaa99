package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/malphas-lang/ski/internal/diag"
	"github.com/malphas-lang/ski/internal/expr"
	"github.com/malphas-lang/ski/internal/render"
)

// Methods lists the requests the server answers.
var Methods = []string{"initialize", "shutdown", "ski/run", "ski/context", "ski/reset", "ski/style"}

// HandleMessage dispatches one message. It reports true once the client
// has asked the server to exit.
func (s *Server) HandleMessage(msg *RPCMessage) bool {
	if msg.Method == "" {
		// Responses from the client are not expected.
		return false
	}
	if msg.Method == "exit" {
		return true
	}
	if s.shutdown && msg.ID != nil {
		s.replyError(msg.ID, &RPCError{Code: CodeInvalidRequest, Message: "server is shutting down"})
		return false
	}

	var (
		result any
		err    error
	)
	switch msg.Method {
	case "initialize":
		result = s.handleInitialize()
	case "initialized":
		return false
	case "shutdown":
		s.shutdown = true
	case "ski/run":
		result, err = s.handleRun(msg.Params)
	case "ski/context":
		result = s.handleContext()
	case "ski/reset":
		result, err = s.handleReset(msg.Params)
	case "ski/style":
		result, err = s.handleStyle(msg.Params)
	default:
		if msg.ID == nil {
			return false
		}
		err = &RPCError{Code: CodeMethodNotFound, Message: fmt.Sprintf("unknown method %q", msg.Method)}
	}

	if msg.ID == nil {
		return false
	}
	if err != nil {
		var rpcErr *RPCError
		if !errors.As(err, &rpcErr) {
			rpcErr = &RPCError{Code: CodeInternalError, Message: err.Error()}
		}
		s.replyError(msg.ID, rpcErr)
		return false
	}
	s.reply(msg.ID, result)
	return false
}

func (s *Server) handleInitialize() any {
	return map[string]any{
		"serverInfo": map[string]any{"name": "ski"},
		"capabilities": map[string]any{
			"methods": Methods,
			"styles":  []string{expr.EcmaScript.String(), expr.LazyK.String()},
		},
		"style": s.session.DisplayStyle().String(),
	}
}

type runParams struct {
	Line string `json:"line"`
}

func (s *Server) handleRun(raw json.RawMessage) (any, error) {
	var params runParams
	if err := unmarshalParams(raw, &params); err != nil {
		return nil, err
	}

	out, err := s.session.Run(params.Line)
	if err != nil {
		s.logf("%s: %v", params.Line, err)
		return nil, commandError(err)
	}
	s.logf("%s: %d lines", out.Command, len(out.Lines))
	return out, nil
}

type aliasEntry struct {
	Name string `json:"name"`
	Expr string `json:"expr"`
}

type contextResult struct {
	Style       string       `json:"style"`
	Definitions []string     `json:"definitions"`
	Aliases     []aliasEntry `json:"aliases"`
}

func (s *Server) handleContext() any {
	style := s.session.DisplayStyle()
	return contextResult{
		Style: style.String(),
		Definitions: lo.Map(s.session.Context().Funcs(), func(f expr.Func, _ int) string {
			return render.Func(f, style)
		}),
		Aliases: lo.Map(s.session.Aliases().Entries(), func(a expr.AliasEntry, _ int) aliasEntry {
			return aliasEntry{Name: string(a.Name), Expr: render.Expr(a.Expr, style)}
		}),
	}
}

type resetParams struct {
	Clear bool `json:"clear"`
}

func (s *Server) handleReset(raw json.RawMessage) (any, error) {
	var params resetParams
	if err := unmarshalParams(raw, &params); err != nil {
		return nil, err
	}
	if params.Clear {
		s.session.Clear()
	} else {
		s.session.Reset()
	}
	return s.handleContext(), nil
}

type styleParams struct {
	Style string `json:"style"`
}

func (s *Server) handleStyle(raw json.RawMessage) (any, error) {
	var params styleParams
	if err := unmarshalParams(raw, &params); err != nil {
		return nil, err
	}
	if params.Style != "" {
		style, err := expr.ParseDisplayStyle(params.Style)
		if err != nil {
			return nil, &RPCError{Code: CodeInvalidParams, Message: err.Error()}
		}
		s.session.SetDisplayStyle(style)
	}
	return map[string]string{"style": s.session.DisplayStyle().String()}, nil
}

func unmarshalParams(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &RPCError{Code: CodeInvalidParams, Message: fmt.Sprintf("invalid params: %v", err)}
	}
	return nil
}

// errorData is the payload of a failed command.
type errorData struct {
	Stage string            `json:"stage"`
	Code  string            `json:"code"`
	Range *render.ExprRange `json:"range,omitempty"`
	Help  string            `json:"help,omitempty"`
	Notes []string          `json:"notes,omitempty"`
}

func commandError(err error) *RPCError {
	var source interface{ ToDiagnostic() diag.Diagnostic }
	if !errors.As(err, &source) {
		return &RPCError{Code: CodeCommandFailed, Message: err.Error()}
	}

	d := source.ToDiagnostic()
	data := errorData{Stage: string(d.Stage), Code: string(d.Code), Help: d.Help, Notes: d.Notes}
	if d.Span.IsValid() {
		data.Range = &render.ExprRange{Start: d.Span.Start, End: d.Span.End}
	}
	return &RPCError{Code: CodeCommandFailed, Message: d.Message, Data: data}
}

func (s *Server) reply(id *json.RawMessage, result any) {
	resultBytes, err := json.Marshal(result)
	if err != nil {
		s.replyError(id, &RPCError{Code: CodeInternalError, Message: err.Error()})
		return
	}
	s.write(&RPCMessage{JSONRPC: "2.0", ID: id, Result: resultBytes})
}

func (s *Server) replyError(id *json.RawMessage, rpcErr *RPCError) {
	s.write(&RPCMessage{JSONRPC: "2.0", ID: id, Error: rpcErr})
}

func (s *Server) notify(method string, params any) {
	paramsBytes, _ := json.Marshal(params)
	s.write(&RPCMessage{JSONRPC: "2.0", Method: method, Params: paramsBytes})
}

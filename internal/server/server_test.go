package server_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/malphas-lang/ski/internal/engine"
	"github.com/malphas-lang/ski/internal/server"
)

func frame(t *testing.T, msgs ...string) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	for _, m := range msgs {
		if err := server.WriteMessage(&buf, mustMessage(t, m)); err != nil {
			t.Fatalf("WriteMessage: %v", err)
		}
	}
	return &buf
}

func mustMessage(t *testing.T, src string) *server.RPCMessage {
	t.Helper()

	var msg server.RPCMessage
	if err := json.Unmarshal([]byte(src), &msg); err != nil {
		t.Fatalf("bad test message %s: %v", src, err)
	}
	return &msg
}

// serve runs a fresh server over msgs and returns its replies, skipping
// log notifications.
func serve(t *testing.T, msgs ...string) []*server.RPCMessage {
	t.Helper()

	var out bytes.Buffer
	srv := server.NewServer(frame(t, msgs...), &out, engine.NewSession(nil, engine.DefaultOptions()))
	if err := srv.Serve(); err != nil {
		t.Fatalf("Serve: %v", err)
	}

	var replies []*server.RPCMessage
	reader := bufio.NewReader(&out)
	for {
		msg, err := server.ReadMessage(reader)
		if err != nil {
			break
		}
		if msg.Method == "window/logMessage" {
			continue
		}
		replies = append(replies, msg)
	}
	return replies
}

func TestFramingRoundTrip(t *testing.T) {
	buf := frame(t, `{"jsonrpc":"2.0","id":1,"method":"ski/run","params":{"line":"i(x)"}}`)
	if !strings.HasPrefix(buf.String(), "Content-Length: ") {
		t.Fatalf("expected a Content-Length header, got %q", buf.String())
	}

	msg, err := server.ReadMessage(bufio.NewReader(buf))
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if msg.Method != "ski/run" || string(*msg.ID) != "1" {
		t.Fatalf("unexpected message %+v", msg)
	}
}

func TestReadMessageHeaders(t *testing.T) {
	body := `{"jsonrpc":"2.0","method":"initialized"}`
	src := "Content-Type: application/vscode-jsonrpc\r\ncontent-length: 40\r\n\r\n" + body
	msg, err := server.ReadMessage(bufio.NewReader(strings.NewReader(src)))
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if msg.Method != "initialized" {
		t.Fatalf("unexpected method %q", msg.Method)
	}

	_, err = server.ReadMessage(bufio.NewReader(strings.NewReader("X-Other: 1\r\n\r\n{}")))
	if !errors.Is(err, server.ErrMissingLength) {
		t.Fatalf("expected ErrMissingLength, got %v", err)
	}
}

func TestServeRun(t *testing.T) {
	replies := serve(t,
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`,
		`{"jsonrpc":"2.0","method":"initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"ski/run","params":{"line":"s(k, k, x)"}}`,
	)
	if len(replies) != 2 {
		t.Fatalf("expected two replies, got %d", len(replies))
	}

	var out engine.Output
	if err := json.Unmarshal(replies[1].Result, &out); err != nil {
		t.Fatalf("bad result: %v", err)
	}
	if out.Command != "reduce" || len(out.Lines) != 3 || out.Lines[2].Text != "x" {
		t.Fatalf("unexpected output %+v", out)
	}
	if out.Lines[0].Reducible == nil || out.Lines[0].Reducible.Entire.End != 10 {
		t.Fatalf("expected the reducible range in the reply")
	}
}

func TestServeCommandError(t *testing.T) {
	replies := serve(t, `{"jsonrpc":"2.0","id":7,"method":"ski/run","params":{"line":"f(x, )"}}`)
	if len(replies) != 1 || replies[0].Error == nil {
		t.Fatalf("expected an error reply, got %+v", replies)
	}

	rpcErr := replies[0].Error
	if rpcErr.Code != server.CodeCommandFailed {
		t.Fatalf("unexpected error code %d", rpcErr.Code)
	}
	data, ok := rpcErr.Data.(map[string]any)
	if !ok || data["stage"] != "parser" {
		t.Fatalf("unexpected error data %#v", rpcErr.Data)
	}
}

func TestServeStyleAndContext(t *testing.T) {
	replies := serve(t,
		`{"jsonrpc":"2.0","id":1,"method":"ski/style","params":{"style":"lazyk"}}`,
		`{"jsonrpc":"2.0","id":2,"method":"ski/run","params":{"line":"FOO(x) = x"}}`,
		`{"jsonrpc":"2.0","id":3,"method":"ski/context"}`,
		`{"jsonrpc":"2.0","id":4,"method":"ski/style","params":{"style":"fortran"}}`,
	)
	if len(replies) != 4 {
		t.Fatalf("expected four replies, got %d", len(replies))
	}

	var ctx struct {
		Style       string   `json:"style"`
		Definitions []string `json:"definitions"`
	}
	if err := json.Unmarshal(replies[2].Result, &ctx); err != nil {
		t.Fatalf("bad result: %v", err)
	}
	if ctx.Style != "lazyk" {
		t.Fatalf("unexpected style %q", ctx.Style)
	}
	found := false
	for _, d := range ctx.Definitions {
		found = found || d == "`FOOx = x"
	}
	if !found {
		t.Fatalf("expected FOO among %v", ctx.Definitions)
	}

	if replies[3].Error == nil || replies[3].Error.Code != server.CodeInvalidParams {
		t.Fatalf("expected invalid params, got %+v", replies[3])
	}
}

func TestServeUnknownMethodAndShutdown(t *testing.T) {
	replies := serve(t,
		`{"jsonrpc":"2.0","id":1,"method":"ski/fly"}`,
		`{"jsonrpc":"2.0","method":"ski/notify-only"}`,
		`{"jsonrpc":"2.0","id":2,"method":"shutdown"}`,
		`{"jsonrpc":"2.0","id":3,"method":"ski/context"}`,
		`{"jsonrpc":"2.0","method":"exit"}`,
		`{"jsonrpc":"2.0","id":4,"method":"ski/context"}`,
	)
	if len(replies) != 3 {
		t.Fatalf("expected three replies, got %d", len(replies))
	}
	if replies[0].Error == nil || replies[0].Error.Code != server.CodeMethodNotFound {
		t.Fatalf("expected method not found, got %+v", replies[0])
	}
	if replies[1].Error != nil || string(replies[1].Result) != "null" {
		t.Fatalf("unexpected shutdown reply %+v", replies[1])
	}
	if replies[2].Error == nil || replies[2].Error.Code != server.CodeInvalidRequest {
		t.Fatalf("expected requests after shutdown to fail, got %+v", replies[2])
	}
}

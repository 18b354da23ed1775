package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoServer(t *testing.T) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		out := NewWriter(conn)

		var req RequestEnvelope
		if err := ReadJSON(conn, &req); err != nil {
			return
		}
		switch req.Action {
		case ActionPing:
			_ = out.WriteTyped(PongResponse{Event: EventPong})
		default:
			_ = out.WriteError("unknown action: " + string(req.Action))
		}
		_ = out.WriteAnalysis(EventAnalysisUpdated, []byte(`{"student_id":7}`))
		_ = out.Close()
	}))
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestWriter_PingPong(t *testing.T) {
	srv := echoServer(t)
	defer srv.Close()
	conn := dial(t, srv)

	require.NoError(t, conn.WriteJSON(RequestEnvelope{Action: ActionPing}))

	var pong PongResponse
	require.NoError(t, conn.ReadJSON(&pong))
	assert.Equal(t, EventPong, pong.Event)

	var msg AnalysisMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, EventAnalysisUpdated, msg.Event)
	assert.JSONEq(t, `{"student_id":7}`, string(msg.Report))
}

func TestWriter_UnknownAction(t *testing.T) {
	srv := echoServer(t)
	defer srv.Close()
	conn := dial(t, srv)

	require.NoError(t, conn.WriteJSON(map[string]string{"action": "submit"}))

	var raw map[string]json.RawMessage
	require.NoError(t, conn.ReadJSON(&raw))
	assert.JSONEq(t, `"error"`, string(raw["event"]))
	assert.JSONEq(t, `"unknown action: submit"`, string(raw["error"]))
}

func TestWriter_CloseSendsNormalClosure(t *testing.T) {
	srv := echoServer(t)
	defer srv.Close()
	conn := dial(t, srv)

	require.NoError(t, conn.WriteJSON(RequestEnvelope{Action: ActionPing}))

	var pong PongResponse
	require.NoError(t, conn.ReadJSON(&pong))
	var msg AnalysisMessage
	require.NoError(t, conn.ReadJSON(&msg))

	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
}

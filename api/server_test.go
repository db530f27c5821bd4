package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gws "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/sanandreas/game/config"
	"github.com/wricardo/sanandreas/game/engine"
	"github.com/wricardo/sanandreas/game/service"
	"github.com/wricardo/sanandreas/game/session"
	"github.com/wricardo/sanandreas/transport/websocket"
)

type fixture struct {
	server *Server
	hub    *websocket.Hub
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	scenarios, err := config.NewManager("")
	require.NoError(t, err)
	store, err := session.NewFilePersistence(t.TempDir(), scenarios)
	require.NoError(t, err)
	sessions := session.NewManager(scenarios, session.WithPersistence(store))

	hub := websocket.NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	svc := service.NewGameService(sessions, scenarios, service.WithListener(hub.Publish))
	return &fixture{server: NewServer(svc, hub, zerolog.Nop()), hub: hub}
}

func (f *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (f *fixture) newGame(t *testing.T, scenario string) *service.SessionInfo {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/api/sessions", map[string]string{"scenario": scenario})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[*service.SessionInfo](t, rec)
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decode[map[string]string](t, rec)["status"])
}

func TestCreateSession(t *testing.T) {
	f := newFixture(t)

	t.Run("default scenario without body", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/sessions", nil)
		require.Equal(t, http.StatusCreated, rec.Code)
		info := decode[*service.SessionInfo](t, rec)
		assert.Equal(t, config.DefaultScenario, info.Scenario)
		assert.Equal(t, 80, len(info.Snapshot.Map[0]))
	})

	t.Run("named scenario", func(t *testing.T) {
		info := f.newGame(t, "short_story")
		assert.Equal(t, "short_story", info.Scenario)
		assert.Len(t, info.Snapshot.Map, 12)
	})

	t.Run("unknown scenario", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/sessions", map[string]string{"scenario": "atlantis"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/sessions", strings.NewReader("{"))
		rec := httptest.NewRecorder()
		f.server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSessionLifecycle(t *testing.T) {
	f := newFixture(t)
	info := f.newGame(t, "")

	rec := f.do(t, http.MethodGet, "/api/sessions/"+info.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, info.ID, decode[*service.SessionInfo](t, rec).ID)

	f.newGame(t, "short_story")
	rec = f.do(t, http.MethodGet, "/api/sessions?sort=created&order=asc&limit=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[struct {
		Count    int                    `json:"count"`
		Total    int                    `json:"total"`
		Sessions []*service.SessionInfo `json:"sessions"`
	}](t, rec)
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, 2, list.Total)
	assert.Equal(t, info.ID, list.Sessions[0].ID)

	rec = f.do(t, http.MethodDelete, "/api/sessions/"+info.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = f.do(t, http.MethodGet, "/api/sessions/"+info.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = f.do(t, http.MethodDelete, "/api/sessions/"+info.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCommands(t *testing.T) {
	f := newFixture(t)
	info := f.newGame(t, "")
	path := "/api/sessions/" + info.ID + "/commands"

	t.Run("single command", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, path, map[string]string{"command": "d"})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		res := decode[*service.CommandResult](t, rec)
		assert.True(t, res.TurnEnded)
		assert.Equal(t, engine.Position{X: 41, Y: 12}, res.Snapshot.Player.Position)
	})

	t.Run("batch", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, path, map[string][]string{"commands": {"d", "s", "?"}})
		require.Equal(t, http.StatusOK, rec.Code)
		res := decode[*service.BatchResult](t, rec)
		assert.Equal(t, 3, res.Executed)
		assert.Equal(t, 2, res.TurnsEnded)
		assert.Equal(t, 3, res.Snapshot.Tick)
	})

	t.Run("empty request", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, path, map[string]string{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown session", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/sessions/nope/commands", map[string]string{"command": "w"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("finished game", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, path, map[string]string{"command": "q"})
		require.Equal(t, http.StatusOK, rec.Code)
		rec = f.do(t, http.MethodPost, path, map[string]string{"command": "w"})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("history", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/sessions/"+info.ID+"/history?limit=2&order=asc", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		hist := decode[*service.HistoryResponse](t, rec)
		assert.Equal(t, 5, hist.Total)
		require.Len(t, hist.Entries, 2)
		assert.Equal(t, "d", hist.Entries[0].Input)
	})

	t.Run("reset", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/sessions/"+info.ID+"/reset", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		rec = f.do(t, http.MethodPost, path, map[string]string{"command": "w"})
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestView(t *testing.T) {
	f := newFixture(t)
	info := f.newGame(t, "")

	rec := f.do(t, http.MethodGet, "/api/sessions/"+info.ID+"/view", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	snap := decode[*service.Snapshot](t, rec)
	assert.Equal(t, info.ID, snap.SessionID)
	assert.Equal(t, "low", snap.Threat)

	rec = f.do(t, http.MethodGet, "/api/sessions/"+info.ID+"/view?format=text", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	lines := strings.Split(strings.TrimSuffix(rec.Body.String(), "\n"), "\n")
	assert.Len(t, lines, 3+25)
	assert.True(t, strings.HasPrefix(lines[0], "Health: 100/100"))
	assert.Equal(t, "@", lines[3+12][40:41])
}

func TestListScenarios(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/api/scenarios", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	infos := decode[[]config.ScenarioInfo](t, rec)
	var ids []string
	for _, info := range infos {
		ids = append(ids, info.ID)
	}
	assert.Contains(t, ids, "default")
	assert.Contains(t, ids, "short_story")
}

func TestWebSocketSpectator(t *testing.T) {
	f := newFixture(t)
	info := f.newGame(t, "")

	srv := httptest.NewServer(f.server)
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")

	t.Run("requires a session", func(t *testing.T) {
		_, resp, err := gws.DefaultDialer.Dial(wsURL+"/ws", nil)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		_, resp, err = gws.DefaultDialer.Dial(wsURL+"/ws?session=nope", nil)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("receives snapshots after commands", func(t *testing.T) {
		conn, _, err := gws.DefaultDialer.Dial(wsURL+"/ws?session="+info.ID, nil)
		require.NoError(t, err)
		defer conn.Close()

		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var first websocket.Message
		require.NoError(t, conn.ReadJSON(&first))
		assert.Equal(t, 0, first.Snapshot.Tick)

		rec := f.do(t, http.MethodPost, "/api/sessions/"+info.ID+"/commands", map[string]string{"command": "d"})
		require.Equal(t, http.StatusOK, rec.Code)

		var next websocket.Message
		require.NoError(t, conn.ReadJSON(&next))
		assert.Equal(t, websocket.EventSnapshot, next.Event)
		assert.Equal(t, 1, next.Snapshot.Tick)
	})
}

package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/codenames/internal/game"
)

func dialWS(t *testing.T, ts *httptest.Server, cookie *http.Cookie) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	h := http.Header{}
	if cookie != nil {
		h.Set("Cookie", cookie.String())
	}
	return websocket.DefaultDialer.Dial(url, h)
}

func readView(t *testing.T, conn *websocket.Conn) game.BoardView {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var v game.BoardView
	require.NoError(t, conn.ReadJSON(&v))
	return v
}

func TestWS_RequiresSession(t *testing.T) {
	e := newTestEnv(t, nil)
	ts := httptest.NewServer(e.srv.Router())
	defer ts.Close()

	_, resp, err := dialWS(t, ts, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWS_Actions(t *testing.T) {
	e := newTestEnv(t, nil)
	ts := httptest.NewServer(e.srv.Router())
	defer ts.Close()

	cookie, first := e.start(t)
	conn, _, err := dialWS(t, ts, cookie)
	require.NoError(t, err)
	defer conn.Close()

	v := readView(t, conn)
	assert.Equal(t, first.ID, v.ID)

	require.NoError(t, conn.WriteJSON(map[string]any{"action": "hover_enter", "row": 2, "col": 1}))
	v = readView(t, conn)
	require.NotNil(t, v.Focused)
	assert.Equal(t, game.Coord{Row: 2, Col: 1}, *v.Focused)

	require.NoError(t, conn.WriteJSON(map[string]any{"action": "click", "row": 2, "col": 1}))
	v = readView(t, conn)
	require.NotNil(t, v.Selected)
	assert.Equal(t, game.SelectedColor, v.Tiles[2][1].Display)

	// Hover events on the selected cell are ignored.
	require.NoError(t, conn.WriteJSON(map[string]any{"action": "hover_leave", "row": 2, "col": 1}))
	v = readView(t, conn)
	assert.NotNil(t, v.Focused)

	require.NoError(t, conn.WriteJSON(map[string]any{"action": "open"}))
	v = readView(t, conn)
	assert.Equal(t, game.StateOpened, v.Tiles[2][1].State)

	// Websocket actions land in the same session state as HTTP ones.
	st, err := e.store.Get(context.Background(), sessionFromCookie(t, e, cookie))
	require.NoError(t, err)
	assert.True(t, st.Board.At(game.Coord{Row: 2, Col: 1}).Opened())
}

func TestWS_Errors(t *testing.T) {
	e := newTestEnv(t, nil)
	ts := httptest.NewServer(e.srv.Router())
	defer ts.Close()

	cookie, _ := e.start(t)
	conn, _, err := dialWS(t, ts, cookie)
	require.NoError(t, err)
	defer conn.Close()
	readView(t, conn)

	tests := []struct {
		msg  map[string]any
		want string
	}{
		{map[string]any{"action": "dance"}, "unknown_action"},
		{map[string]any{"action": "click"}, "bad_coord"},
		{map[string]any{"action": "hover_enter", "row": 1}, "bad_coord"},
		{map[string]any{"action": "click", "row": 0, "col": 7}, "out_of_range"},
	}
	for _, tt := range tests {
		require.NoError(t, conn.WriteJSON(tt.msg))
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var res wsError
		require.NoError(t, conn.ReadJSON(&res))
		assert.Equal(t, tt.want, res.Error)
	}
}

func sessionFromCookie(t *testing.T, e testEnv, c *http.Cookie) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	id, err := e.srv.sessions.FromRequest(req)
	require.NoError(t, err)
	return id
}

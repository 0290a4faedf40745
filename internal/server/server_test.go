package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"skirmish/internal/config"
	"skirmish/internal/entity"
	"skirmish/internal/field"
	"skirmish/internal/match"
	"skirmish/internal/turn"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestServer(t *testing.T) (*httptest.Server, *match.Session) {
	t.Helper()
	hub := match.NewHub(quiet)
	m, err := match.New(config.DefaultGame(), nil, match.Options{Seed: 3, Logger: quiet, Events: hub.Publish})
	if err != nil {
		t.Fatalf("match.New: %v", err)
	}
	session := match.NewSession(m)
	ts := httptest.NewServer(New(session, hub, quiet).Routes())
	t.Cleanup(ts.Close)
	return ts, session
}

func get(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)
	var body map[string]string
	if code := get(t, ts.URL+"/api/health", &body); code != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("health %d %v", code, body)
	}
}

func TestGetField(t *testing.T) {
	ts, _ := newTestServer(t)
	var body struct {
		State   string            `json:"state"`
		Width   int               `json:"width"`
		Height  int               `json:"height"`
		Terrain [][]string        `json:"terrain"`
		Units   []json.RawMessage `json:"units"`
		Bases   []struct {
			Name string `json:"name"`
		} `json:"bases"`
	}
	if code := get(t, ts.URL+"/api/field", &body); code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if body.State != "in_progress" || body.Width != 10 || body.Height != 10 || len(body.Terrain) != 10 {
		t.Errorf("field %+v", body)
	}
	if len(body.Units) != 3 || len(body.Bases) != 1 || body.Bases[0].Name != match.DefaultBaseName {
		t.Errorf("units %d bases %+v", len(body.Units), body.Bases)
	}
}

func TestFieldDecodesIntoSnapshot(t *testing.T) {
	ts, _ := newTestServer(t)
	var st matchState
	if code := get(t, ts.URL+"/api/field", &st); code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if st.State != turn.InProgress || len(st.Terrain) != 10 || len(st.Units) != 3 {
		t.Errorf("decoded state %v, %d rows, %d units", st.State, len(st.Terrain), len(st.Units))
	}
	if st.Units[1].Kind != entity.Crossbowman {
		t.Errorf("second unit is %v", st.Units[1].Kind)
	}
}

func TestGetRender(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/field/render")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if !strings.HasPrefix(string(raw), "Field 10x10") || !strings.Contains(string(raw), "[#]") {
		t.Errorf("render:\n%s", raw)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("content type %q", ct)
	}
}

func TestUnits(t *testing.T) {
	ts, _ := newTestServer(t)
	var units []field.UnitView
	if code := get(t, ts.URL+"/api/units", &units); code != http.StatusOK || len(units) != 3 {
		t.Fatalf("units %d %+v", code, units)
	}
	if units[0].Kind != entity.Swordsman || units[2].Kind != entity.Healer {
		t.Errorf("unit kinds %v, %v", units[0].Kind, units[2].Kind)
	}

	var one struct {
		ID        int    `json:"id"`
		Name      string `json:"name"`
		Terrain   string `json:"terrain"`
		Reachable []any  `json:"reachable"`
	}
	if code := get(t, ts.URL+"/api/units/1", &one); code != http.StatusOK || one.ID != 1 || one.Name != "Swordsman" || one.Terrain == "" {
		t.Errorf("unit 1: %d %+v", code, one)
	}
	if one.Reachable == nil {
		t.Error("reachable should be a list")
	}

	var e map[string]string
	if code := get(t, ts.URL+"/api/units/99", &e); code != http.StatusNotFound || e["error"] == "" {
		t.Errorf("missing unit: %d %v", code, e)
	}
	if code := get(t, ts.URL+"/api/units/abc", nil); code != http.StatusBadRequest {
		t.Errorf("bad id: %d", code)
	}
}

func TestTerrain(t *testing.T) {
	ts, _ := newTestServer(t)
	var cell cellInfo
	if code := get(t, ts.URL+"/api/terrain/2/2", &cell); code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if cell.Occupant != match.DefaultBaseName || cell.OccupantSym != "#" || cell.Empty || cell.MoveCost == 0 {
		t.Errorf("cell %+v", cell)
	}
	if code := get(t, ts.URL+"/api/terrain/10/0", nil); code != http.StatusBadRequest {
		t.Errorf("out of bounds: %d", code)
	}
	if code := get(t, ts.URL+"/api/terrain/x/0", nil); code != http.StatusBadRequest {
		t.Errorf("bad coordinate: %d", code)
	}
}

func TestEventStream(t *testing.T) {
	ts, session := newTestServer(t)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var hello field.Event
	if err := conn.ReadJSON(&hello); err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if hello.Type != "Snapshot" || hello.Payload["state"] != "in_progress" {
		t.Fatalf("hello %+v", hello.Type)
	}

	err = session.Do(func(m *match.Match) error {
		_, err := m.Turns.Advance()
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	var ev field.Event
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read event: %v", err)
	}
	if ev.Type != "TurnAdvanced" || ev.Turn != 1 {
		t.Errorf("event %+v", ev)
	}
}

func TestJoinStartsAfterSnapshot(t *testing.T) {
	hub := match.NewHub(quiet)
	m, err := match.New(config.DefaultGame(), nil, match.Options{Seed: 3, Logger: quiet, Events: hub.Publish})
	if err != nil {
		t.Fatalf("match.New: %v", err)
	}
	session := match.NewSession(m)
	s := New(session, hub, quiet)

	const turns = 200
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < turns; i++ {
			_ = session.Do(func(m *match.Match) error {
				_, err := m.Turns.Advance()
				return err
			})
		}
	}()

	type joined struct {
		hello  field.Event
		events <-chan field.Event
		cancel func()
	}
	var subs []joined
	for i := 0; i < 100; i++ {
		hello, events, cancel := s.join()
		subs = append(subs, joined{hello, events, cancel})
		runtime.Gosched()
	}
	<-done

	for _, j := range subs {
		select {
		case ev := <-j.events:
			if ev.Turn != j.hello.Turn+1 {
				t.Errorf("snapshot at turn %d, first event %s at turn %d", j.hello.Turn, ev.Type, ev.Turn)
			}
		default:
			if j.hello.Turn != turns {
				t.Errorf("snapshot at turn %d saw no later event", j.hello.Turn)
			}
		}
		j.cancel()
	}
}

package cli

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/searchviz/pkg/animate"
	"github.com/matzehuels/searchviz/pkg/buildinfo"
	"github.com/matzehuels/searchviz/pkg/pipeline"
	"github.com/matzehuels/searchviz/pkg/render"
)

func newTestServer(t *testing.T) (*server, *animate.Virtual, *httptest.Server) {
	t.Helper()
	res, err := pipeline.NewRunner(nil, nil).LoadGraph(context.Background(), pipeline.Options{})
	if err != nil {
		t.Fatal(err)
	}
	s := newServer(res, render.DefaultPalette(), animate.DefaultDelay, log.New(io.Discard))
	v := animate.NewVirtual()
	s.scheduler = v
	ts := httptest.NewServer(s.routes())
	t.Cleanup(func() {
		ts.Close()
		s.close()
	})
	return s, v, ts
}

func createRun(t *testing.T, ts *httptest.Server, body string) (*http.Response, runStatus) {
	t.Helper()
	resp, err := http.Post(ts.URL+"/runs", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var st runStatus
	if resp.StatusCode == http.StatusCreated {
		if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
			t.Fatal(err)
		}
	}
	return resp, st
}

func TestServerGraph(t *testing.T) {
	_, _, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/graph.svg")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if got := resp.Header.Get("Server"); got != buildinfo.UserAgent() {
		t.Errorf("Server = %q, want %q", got, buildinfo.UserAgent())
	}
	if got := strings.Count(string(body), "<circle"); got != 9 {
		t.Errorf("circles = %d, want 9", got)
	}

	resp, err = http.Get(ts.URL + "/graph.json")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var frame struct {
		Nodes  []json.RawMessage `json:"nodes"`
		Source int               `json:"source"`
		Dest   int               `json:"dest"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&frame); err != nil {
		t.Fatal(err)
	}
	if len(frame.Nodes) != 9 || frame.Source != 0 || frame.Dest != 8 {
		t.Errorf("graph.json = %d nodes, %d→%d", len(frame.Nodes), frame.Source, frame.Dest)
	}
}

func TestServerRunLifecycle(t *testing.T) {
	_, v, ts := newTestServer(t)

	resp, st := createRun(t, ts, `{"algorithm":"dfs","from":"A","to":"I"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST /runs status = %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/runs/"+st.ID {
		t.Errorf("Location = %q", loc)
	}
	if st.State != "running" || st.Algorithm != "dfs" || st.Source != "A" {
		t.Errorf("created run = %+v", st)
	}

	v.Drain(0)

	resp, err := http.Get(ts.URL + st.Events)
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	events := string(body)
	if !strings.HasPrefix(events, "event: graph\n") {
		t.Errorf("stream should open with the graph, got %.60q", events)
	}
	if got := strings.Count(events, "event: step\n"); got != 5 {
		t.Errorf("step events = %d, want 5 (A C F H I)", got)
	}
	if !strings.HasSuffix(events, "event: done\ndata: {\"done\":true}\n\n") {
		t.Errorf("stream should end with done, got %q", events)
	}

	resp, err = http.Get(ts.URL + "/runs/" + st.ID)
	if err != nil {
		t.Fatal(err)
	}
	var got runStatus
	json.NewDecoder(resp.Body).Decode(&got)
	resp.Body.Close()
	if got.State != "finished" || !got.Found || strings.Join(got.Path, "") != "ACFHI" {
		t.Errorf("finished run = %+v", got)
	}

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/runs/"+st.ID, nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("DELETE status = %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/runs/" + st.ID)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET deleted run status = %d, want 404", resp.StatusCode)
	}
}

func TestServerDestroyStopsRun(t *testing.T) {
	s, v, ts := newTestServer(t)

	_, st := createRun(t, ts, `{}`)
	v.Advance(animate.DefaultDelay) // one visit

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/runs/"+st.ID, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if n := v.Drain(0); n != 0 {
		t.Errorf("destroyed run still ran %d ticks", n)
	}
	s.mu.Lock()
	n := len(s.runs)
	s.mu.Unlock()
	if n != 0 {
		t.Errorf("runs = %d after delete", n)
	}
}

func TestServerErrors(t *testing.T) {
	_, _, ts := newTestServer(t)

	tests := []struct {
		body   string
		status int
		code   string
	}{
		{`{"algorithm":"astar"}`, http.StatusBadRequest, "INVALID_ALGORITHM"},
		{`{"from":"Z"}`, http.StatusBadRequest, "INVALID_NODE"},
		{`{"delay":"fast"}`, http.StatusBadRequest, "INVALID_INPUT"},
		{`{"delay":"-1ms"}`, http.StatusBadRequest, "INVALID_INPUT"},
		{`{`, http.StatusBadRequest, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		resp, err := http.Post(ts.URL+"/runs", "application/json", strings.NewReader(tt.body))
		if err != nil {
			t.Fatal(err)
		}
		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		resp.Body.Close()
		if resp.StatusCode != tt.status || body["code"] != tt.code {
			t.Errorf("POST %s = %d %q, want %d %q", tt.body, resp.StatusCode, body["code"], tt.status, tt.code)
		}
	}

	resp, err := http.Get(ts.URL + "/runs/nope/events")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("events of unknown run = %d, want 404", resp.StatusCode)
	}
}

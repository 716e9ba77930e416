package stream

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/searchviz/pkg/animate"
	"github.com/matzehuels/searchviz/pkg/graph"
	"github.com/matzehuels/searchviz/pkg/search"
)

func TestServeCompletedRun(t *testing.T) {
	s := NewSink()
	_, err := animate.Complete(animate.Config{
		Graph:     graph.Triangle(),
		Algorithm: search.BFS,
		Source:    0,
		Dest:      2,
		Sink:      s,
	})
	if err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs/x/events", nil))

	if got := rec.Header().Get("Content-Type"); got != "text/event-stream" {
		t.Errorf("Content-Type = %q", got)
	}
	body := rec.Body.String()
	want := []string{
		"event: step\ndata: {\"visitedSource\":0}\n\n",
		"event: step\ndata: {\"visitedSource\":1}\n\n",
		"event: step\ndata: {\"visitedSource\":2}\n\n",
		"event: done\ndata: {\"done\":true}\n\n",
	}
	if !strings.HasPrefix(body, "event: graph\ndata: {\"nodes\":[") {
		t.Errorf("body does not start with graph event: %.80q", body)
	}
	if !strings.Contains(body, `"source":0,"dest":2}`) {
		t.Errorf("graph event lacks endpoints: %q", body)
	}
	if !strings.HasSuffix(body, strings.Join(want, "")) {
		t.Errorf("body = %q, want suffix %q", body, strings.Join(want, ""))
	}
}

func TestCloseBeforeDraw(t *testing.T) {
	s := NewSink()
	s.Close()
	s.Close()
	s.DrawStaticGraph(graph.Triangle(), 0, 2)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", rec.Body.String())
	}
}

func TestClientDisconnect(t *testing.T) {
	s := NewSink()
	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)

	done := make(chan struct{})
	go func() {
		s.ServeHTTP(httptest.NewRecorder(), req)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("ServeHTTP did not return after cancel")
	}
}

func TestWriteEvent(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteEvent(&buf, "step", animate.Event{Kind: animate.VisitedDest, Node: 4}); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "event: step\ndata: {\"visitedDest\":4}\n\n"; got != want {
		t.Errorf("WriteEvent() = %q, want %q", got, want)
	}
	if err := WriteEvent(&buf, "bad", make(chan int)); err == nil {
		t.Error("WriteEvent(chan) returned nil error")
	}
}

package analysis

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/swingmatch/swingmatch/internal/capture"
)

// startMockDaemon creates a Unix socket that accepts connections, reads one
// command from each, passes it to got, and writes back a canned response.
func startMockDaemon(t *testing.T, response Response, events ...Event) (string, <-chan Command) {
	t.Helper()

	dir := t.TempDir()
	sockPath := filepath.Join(dir, "test.sock")

	ln, err := net.Listen("unix", sockPath)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() {
		ln.Close()
		os.Remove(sockPath)
	})

	got := make(chan Command, 8)
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				defer conn.Close()

				r := bufio.NewReader(conn)
				line, err := r.ReadBytes('\n')
				if err != nil {
					return
				}
				var cmd Command
				if err := json.Unmarshal(line, &cmd); err == nil {
					got <- cmd
				}

				data, _ := json.Marshal(response)
				conn.Write(append(data, '\n'))

				for _, ev := range events {
					data, _ := json.Marshal(ev)
					conn.Write(append(data, '\n'))
				}
			}(conn)
		}
	}()

	return sockPath, got
}

func TestClientSendCommand(t *testing.T) {
	sockPath, got := startMockDaemon(t, Response{OK: true, Status: "idle", Queued: IntPtr(2)})

	client, err := Connect(sockPath)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Close()

	resp, err := client.SendCommand(Command{Cmd: CmdStatus})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if !resp.OK {
		t.Error("ok = false, want true")
	}
	if resp.Queued == nil || *resp.Queued != 2 {
		t.Errorf("queued = %v, want 2", resp.Queued)
	}
	if cmd := <-got; cmd.Cmd != CmdStatus {
		t.Errorf("daemon got cmd %q, want %q", cmd.Cmd, CmdStatus)
	}
}

func TestClientConnectFailure(t *testing.T) {
	_, err := Connect("/nonexistent/path/analysis.sock")
	if err == nil {
		t.Error("expected error connecting to nonexistent socket")
	}
}

func TestClientReadEvents(t *testing.T) {
	events := []Event{
		{Event: "progress", AnalysisID: "an-1", Status: "running"},
		{Event: "done", AnalysisID: "an-1", Score: IntPtr(74)},
	}
	sockPath, _ := startMockDaemon(t, Response{OK: true}, events...)

	client, err := Connect(sockPath)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Close()

	if _, err := client.SendCommand(Command{Cmd: CmdSubscribe}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	ev1, err := client.ReadEvent()
	if err != nil {
		t.Fatalf("read event 1: %v", err)
	}
	if ev1.Event != "progress" || ev1.Status != "running" {
		t.Errorf("event1 = %+v", ev1)
	}

	ev2, err := client.ReadEvent()
	if err != nil {
		t.Fatalf("read event 2: %v", err)
	}
	if ev2.Event != "done" || ev2.Score == nil || *ev2.Score != 74 {
		t.Errorf("event2 = %+v", ev2)
	}

	if _, err := client.ReadEvent(); !errors.Is(err, ErrConnectionClosed) {
		t.Errorf("read after hangup = %v, want ErrConnectionClosed", err)
	}
}

func TestClientDeadline(t *testing.T) {
	dir := t.TempDir()
	sockPath := filepath.Join(dir, "silent.sock")
	ln, err := net.Listen("unix", sockPath)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	// Accept and never answer.
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		time.Sleep(2 * time.Second)
	}()

	client, err := Connect(sockPath)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	if _, err := client.SendCommandContext(ctx, Command{Cmd: CmdStatus}); err == nil {
		t.Fatal("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("send took %v, want it bounded by the context deadline", elapsed)
	}
}

func TestSubmitterSendsPayload(t *testing.T) {
	sockPath, got := startMockDaemon(t, Response{OK: true, AnalysisID: "an-7", Status: "queued"})

	s := NewSubmitter(sockPath, time.Second, nil)
	err := s.SubmitForAnalysis(context.Background(), capture.Payload{
		MediaRef:        "file:///media/s.mov",
		Notes:           "toss drifting right",
		Tags:            []string{"Serve", "Toss"},
		DurationSeconds: 3,
		Stroke:          "Serve",
	})
	if err != nil {
		t.Fatalf("SubmitForAnalysis: %v", err)
	}

	cmd := <-got
	if cmd.Cmd != CmdAnalyze {
		t.Errorf("cmd = %q, want %q", cmd.Cmd, CmdAnalyze)
	}
	if cmd.MediaRef != "file:///media/s.mov" {
		t.Errorf("mediaRef = %q", cmd.MediaRef)
	}
	if cmd.DurationSeconds == nil || *cmd.DurationSeconds != 3 {
		t.Errorf("durationSeconds = %v, want 3", cmd.DurationSeconds)
	}
	if len(cmd.Tags) != 2 || cmd.Tags[1] != "Toss" {
		t.Errorf("tags = %v, want [Serve Toss]", cmd.Tags)
	}
}

func TestSubmitterRejected(t *testing.T) {
	sockPath, _ := startMockDaemon(t, Response{OK: false, Error: "queue full"})

	s := NewSubmitter(sockPath, time.Second, nil)
	err := s.SubmitForAnalysis(context.Background(), capture.Payload{Stroke: "Volley"})
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("err = %v, want ErrRejected", err)
	}
}

func TestSubmitterNoDaemon(t *testing.T) {
	s := NewSubmitter(filepath.Join(t.TempDir(), "missing.sock"), time.Second, nil)
	if err := s.SubmitForAnalysis(context.Background(), capture.Payload{}); err == nil {
		t.Fatal("expected error without a daemon")
	}
}

func TestSubmitterStatus(t *testing.T) {
	sockPath, _ := startMockDaemon(t, Response{OK: true, Status: "busy", Queued: IntPtr(5)})

	resp, err := NewSubmitter(sockPath, time.Second, nil).Status(context.Background())
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if resp.Status != "busy" || resp.Queued == nil || *resp.Queued != 5 {
		t.Errorf("status = %+v", resp)
	}
}

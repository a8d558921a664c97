package twilio

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"testing"
)

type stubSocket struct {
	inbound chan []byte
	written []any
	closed  bool
}

func newStubSocket(frames ...string) *stubSocket {
	s := &stubSocket{inbound: make(chan []byte, len(frames)+1)}
	for _, frame := range frames {
		s.inbound <- []byte(frame)
	}
	close(s.inbound)
	return s
}

func (s *stubSocket) ReadMessage() (int, []byte, error) {
	msg, ok := <-s.inbound
	if !ok {
		return 0, nil, io.EOF
	}
	return 1, msg, nil
}

func (s *stubSocket) WriteJSON(v any) error {
	s.written = append(s.written, v)
	return nil
}

func (s *stubSocket) Close() error {
	s.closed = true
	return nil
}

func startedStream(t *testing.T, extraFrames ...string) (*MediaStream, *stubSocket) {
	t.Helper()
	frames := append([]string{
		`{"event":"connected"}`,
		`{"event":"start","start":{"streamSid":"MZ123","callSid":"CA456","customParameters":{"from":"+15550100"}}}`,
	}, extraFrames...)
	conn := newStubSocket(frames...)

	stream, err := NewMediaStream(context.Background(), conn)
	if err != nil {
		t.Fatalf("unexpected error starting media stream: %v", err)
	}
	return stream, conn
}

func TestNewMediaStreamBindsStartFrame(t *testing.T) {
	stream, _ := startedStream(t)

	if stream.CallSID() != "CA456" {
		t.Fatalf("expected call sid CA456, got %q", stream.CallSID())
	}
	if stream.StreamSID() != "MZ123" {
		t.Fatalf("expected stream sid MZ123, got %q", stream.StreamSID())
	}
	if stream.CallerPhone() != "+15550100" {
		t.Fatalf("expected caller phone from custom parameters, got %q", stream.CallerPhone())
	}
}

func TestNewMediaStreamErrorsOnEarlyStop(t *testing.T) {
	conn := newStubSocket(`{"event":"connected"}`, `{"event":"stop"}`)

	if _, err := NewMediaStream(context.Background(), conn); err == nil {
		t.Fatal("expected error when stream stops before start frame")
	}
}

func TestRunDecodesMediaAndDispatchesMarks(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte{0xFF, 0x7F, 0x00})
	stream, _ := startedStream(t,
		fmt.Sprintf(`{"event":"media","media":{"payload":"%s"}}`, payload),
		`{"event":"mark","mark":{"name":"mark-1"}}`,
		`{"event":"stop"}`,
	)

	var audio [][]byte
	var marks []string
	var stopped bool
	err := stream.Run(context.Background(), StreamCallbacks{
		AudioCallback: func(chunk []byte) { audio = append(audio, chunk) },
		MarkCallback:  func(name string) { marks = append(marks, name) },
		StopCallback:  func() { stopped = true },
	})
	if err != nil {
		t.Fatalf("unexpected error running stream: %v", err)
	}

	if len(audio) != 1 || len(audio[0]) != 3 || audio[0][0] != 0xFF {
		t.Fatalf("expected decoded mu-law audio, got %v", audio)
	}
	if len(marks) != 1 || marks[0] != "mark-1" {
		t.Fatalf("expected mark confirmation, got %v", marks)
	}
	if !stopped {
		t.Fatal("expected stop callback on stream end")
	}
}

func TestRunStopsOnClosedSocket(t *testing.T) {
	stream, _ := startedStream(t)

	var stopped bool
	if err := stream.Run(context.Background(), StreamCallbacks{
		StopCallback: func() { stopped = true },
	}); err != nil {
		t.Fatalf("unexpected error on closed socket: %v", err)
	}
	if !stopped {
		t.Fatal("expected stop callback when socket closes")
	}
}

func TestSendAudioWrapsMediaFrame(t *testing.T) {
	stream, conn := startedStream(t)

	if err := stream.SendAudio([]byte{0x01, 0x02}); err != nil {
		t.Fatalf("unexpected error sending audio: %v", err)
	}

	if len(conn.written) != 1 {
		t.Fatalf("expected one written frame, got %d", len(conn.written))
	}
	frame, ok := conn.written[0].(outboundMediaFrame)
	if !ok {
		t.Fatalf("expected media frame, got %T", conn.written[0])
	}
	if frame.Event != "media" || frame.StreamSID != "MZ123" {
		t.Fatalf("unexpected media frame envelope: %+v", frame)
	}
	decoded, err := base64.StdEncoding.DecodeString(frame.Media.Payload)
	if err != nil || len(decoded) != 2 || decoded[0] != 0x01 {
		t.Fatalf("unexpected media payload: %q", frame.Media.Payload)
	}
}

func TestSendMarkAndClear(t *testing.T) {
	stream, conn := startedStream(t)

	name, err := stream.SendMark()
	if err != nil {
		t.Fatalf("unexpected error sending mark: %v", err)
	}
	if name == "" {
		t.Fatal("expected generated mark name")
	}
	if err := stream.Clear(); err != nil {
		t.Fatalf("unexpected error sending clear: %v", err)
	}

	if len(conn.written) != 2 {
		t.Fatalf("expected two written frames, got %d", len(conn.written))
	}
	markFrameOut, ok := conn.written[0].(outboundMarkFrame)
	if !ok || markFrameOut.Event != "mark" || markFrameOut.Mark.Name != name {
		t.Fatalf("unexpected mark frame: %+v", conn.written[0])
	}
	clearFrameOut, ok := conn.written[1].(outboundClearFrame)
	if !ok || clearFrameOut.Event != "clear" || clearFrameOut.StreamSID != "MZ123" {
		t.Fatalf("unexpected clear frame: %+v", conn.written[1])
	}
}

func TestOutboundFramesMarshalToTwilioShape(t *testing.T) {
	raw, err := json.Marshal(outboundMediaFrame{
		Event:     "media",
		StreamSID: "MZ123",
		Media:     mediaFrame{Payload: "AAAA"},
	})
	if err != nil {
		t.Fatalf("unexpected marshal error: %v", err)
	}
	expected := `{"event":"media","streamSid":"MZ123","media":{"payload":"AAAA"}}`
	if string(raw) != expected {
		t.Fatalf("unexpected frame shape:\n got %s\nwant %s", raw, expected)
	}
}

package transcoder

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
)

// TestBuildArgs pins the exact compression profile: any change to the
// resolution cap, codec, preset, quality factor or audio bitrate is a
// behavior change and must show up here.
func TestBuildArgs(t *testing.T) {
	got := buildArgs("/tmp/in.mp4", "/tmp/out.mp4")

	want := []string{
		"-y",
		"-i", "/tmp/in.mp4",
		"-vf", "scale='min(1280,iw)':'min(720,ih)':force_original_aspect_ratio=decrease",
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-crf", "28",
		"-c:a", "aac",
		"-b:a", "128k",
		"/tmp/out.mp4",
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("buildArgs mismatch:\n got  %v\n want %v", got, want)
	}
}

func TestTranscode_MissingInput(t *testing.T) {
	engine := New("ffmpeg", zerolog.Nop())

	err := engine.Transcode(context.Background(), filepath.Join(t.TempDir(), "nope.mp4"), filepath.Join(t.TempDir(), "out.mp4"))
	if err == nil {
		t.Fatal("Expected error for missing input")
	}
}

func TestTranscode_EmptyInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.mp4")
	if err := os.WriteFile(input, nil, 0o600); err != nil {
		t.Fatalf("Failed to create input: %v", err)
	}

	engine := New("ffmpeg", zerolog.Nop())

	err := engine.Transcode(context.Background(), input, filepath.Join(dir, "out.mp4"))
	if err == nil {
		t.Fatal("Expected error for empty input")
	}
}

// TestTranscode_ProcessFailure uses /bin/false as the "encoder" so the
// failure path runs without ffmpeg installed.
func TestTranscode_ProcessFailure(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.mp4")
	output := filepath.Join(dir, "out.mp4")

	if err := os.WriteFile(input, []byte("not really a video"), 0o600); err != nil {
		t.Fatalf("Failed to create input: %v", err)
	}
	// Simulate a partial artifact left behind by the failed process
	if err := os.WriteFile(output, []byte("partial"), 0o600); err != nil {
		t.Fatalf("Failed to create output: %v", err)
	}

	engine := New("false", zerolog.Nop())

	err := engine.Transcode(context.Background(), input, output)
	if err == nil {
		t.Fatal("Expected error from failing process")
	}

	var tErr *TranscodeError
	if !errors.As(err, &tErr) {
		t.Fatalf("Expected *TranscodeError, got %T: %v", err, err)
	}

	if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
		t.Error("Expected partial output to be removed")
	}

	// Input is owned by the caller and must survive the failure
	if _, statErr := os.Stat(input); statErr != nil {
		t.Errorf("Input file should be untouched: %v", statErr)
	}
}

func TestTranscode_EmptyOutputIsFailure(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.mp4")
	output := filepath.Join(dir, "out.mp4")

	if err := os.WriteFile(input, []byte("data"), 0o600); err != nil {
		t.Fatalf("Failed to create input: %v", err)
	}
	if err := os.WriteFile(output, nil, 0o600); err != nil {
		t.Fatalf("Failed to create output: %v", err)
	}

	// /bin/true exits 0 without writing anything
	engine := New("true", zerolog.Nop())

	err := engine.Transcode(context.Background(), input, output)
	var tErr *TranscodeError
	if !errors.As(err, &tErr) {
		t.Fatalf("Expected *TranscodeError for empty output, got %v", err)
	}
}

// TestTranscode_Integration runs the real pipeline end to end. Skipped
// when ffmpeg is not installed.
func TestTranscode_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not available")
	}

	dir := t.TempDir()
	input := filepath.Join(dir, "in.mp4")
	output := filepath.Join(dir, "out.mp4")

	// Generate a tiny test clip with ffmpeg itself
	gen := exec.Command("ffmpeg", "-y",
		"-f", "lavfi", "-i", "testsrc=duration=1:size=320x240:rate=10",
		input,
	)
	if out, err := gen.CombinedOutput(); err != nil {
		t.Skipf("Could not generate test clip: %v: %s", err, out)
	}

	engine := New("ffmpeg", zerolog.Nop())

	if err := engine.Transcode(context.Background(), input, output); err != nil {
		t.Fatalf("Transcode failed: %v", err)
	}

	info, err := os.Stat(output)
	if err != nil {
		t.Fatalf("Output missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Expected non-empty output")
	}
}

func TestTranscodeError_Error(t *testing.T) {
	err := &TranscodeError{ExitErr: errors.New("exit status 1"), Stderr: "no such codec"}

	msg := err.Error()
	if msg == "" {
		t.Fatal("Expected non-empty error message")
	}
	if !errors.Is(err, err.ExitErr) {
		t.Error("Expected Unwrap to expose the exit error")
	}
}

// Package transcoder runs the external ffmpeg compression pipeline
package transcoder

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

// Fixed compression profile: cap at 1280x720 preserving aspect ratio and
// never upscaling, H.264 at quality factor 28 with the veryfast preset,
// AAC audio at 128 kbit/s.
const (
	scaleFilter  = "scale='min(1280,iw)':'min(720,ih)':force_original_aspect_ratio=decrease"
	videoCodec   = "libx264"
	videoPreset  = "veryfast"
	videoCRF     = "28"
	audioCodec   = "aac"
	audioBitrate = "128k"
)

// stderrTailLimit bounds the diagnostic carried on a TranscodeError
const stderrTailLimit = 2048

// TranscodeError is returned when ffmpeg exits non-zero. It carries the
// tail of the process's error stream as the diagnostic.
type TranscodeError struct {
	ExitErr error
	Stderr  string
}

func (e *TranscodeError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("ffmpeg failed: %v", e.ExitErr)
	}
	return fmt.Sprintf("ffmpeg failed: %v: %s", e.ExitErr, e.Stderr)
}

func (e *TranscodeError) Unwrap() error {
	return e.ExitErr
}

// FFmpeg invokes the ffmpeg binary as a bounded synchronous subprocess
type FFmpeg struct {
	binPath string
	logger  zerolog.Logger
}

// New creates an FFmpeg engine using the given binary path
func New(binPath string, logger zerolog.Logger) *FFmpeg {
	if binPath == "" {
		binPath = "ffmpeg"
	}
	return &FFmpeg{
		binPath: binPath,
		logger:  logger,
	}
}

// Transcode re-encodes inputPath into outputPath with the fixed profile.
// It does not return until the process exits. On failure any partial
// output file is removed and a *TranscodeError is returned; outputPath
// must not be treated as valid by the caller.
func (f *FFmpeg) Transcode(ctx context.Context, inputPath, outputPath string) error {
	info, err := os.Stat(inputPath)
	if err != nil {
		return fmt.Errorf("input file: %w", err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("input file %s is empty", inputPath)
	}

	args := buildArgs(inputPath, outputPath)
	f.logger.Info().
		Str("input", inputPath).
		Str("output", outputPath).
		Strs("args", args).
		Msg("Running ffmpeg")

	cmd := exec.CommandContext(ctx, f.binPath, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// A partial output must never reach the caller
		if rmErr := os.Remove(outputPath); rmErr != nil && !os.IsNotExist(rmErr) {
			f.logger.Warn().Str("path", outputPath).Err(rmErr).Msg("Failed to remove partial output")
		}

		if ctx.Err() != nil {
			f.logger.Error().Str("input", inputPath).Err(ctx.Err()).Msg("Transcode cancelled")
			return ctx.Err()
		}

		f.logger.Error().Str("input", inputPath).Str("stderr", stderrTail(stderr.String())).Msg("FFmpeg exited non-zero")
		return &TranscodeError{ExitErr: err, Stderr: stderrTail(stderr.String())}
	}

	out, err := os.Stat(outputPath)
	if err != nil {
		return fmt.Errorf("output file: %w", err)
	}
	if out.Size() == 0 {
		os.Remove(outputPath)
		return &TranscodeError{ExitErr: fmt.Errorf("ffmpeg produced empty output"), Stderr: stderrTail(stderr.String())}
	}

	f.logger.Info().
		Str("output", outputPath).
		Int64("input_bytes", info.Size()).
		Int64("output_bytes", out.Size()).
		Msg("Transcode completed")

	return nil
}

// buildArgs assembles the fixed, non-configurable ffmpeg argument profile
func buildArgs(inputPath, outputPath string) []string {
	return []string{
		"-y",
		"-i", inputPath,
		"-vf", scaleFilter,
		"-c:v", videoCodec,
		"-preset", videoPreset,
		"-crf", videoCRF,
		"-c:a", audioCodec,
		"-b:a", audioBitrate,
		outputPath,
	}
}

// stderrTail trims the error stream to its most recent bytes, which is
// where ffmpeg puts the actual failure reason
func stderrTail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > stderrTailLimit {
		s = s[len(s)-stderrTailLimit:]
	}
	return s
}

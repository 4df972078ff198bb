// Package transcoder runs the external ffmpeg compression pipeline
package transcoder

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/yourusername/telegram-video-bot/config"
)

// Module provides the ffmpeg engine for fx dependency injection
var Module = fx.Module("transcoder",
	fx.Provide(provideFFmpeg),
)

// provideFFmpeg creates the engine from config
func provideFFmpeg(cfg *config.TranscodeConfig, logger zerolog.Logger) *FFmpeg {
	return New(cfg.FFmpegPath, logger.With().Str("component", "ffmpeg").Logger())
}

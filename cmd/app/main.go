package main

import (
	"go.uber.org/fx"

	"github.com/yourusername/telegram-video-bot/internal/app"
)

func main() {
	fx.New(app.CreateApp()).Run()
}

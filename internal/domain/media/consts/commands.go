// Package consts contains constants for the media domain
package consts

// Command represents a bot command
type Command struct {
	Name        string
	Description string
}

// Bot commands
var (
	CommandStart = Command{Name: "start", Description: "Start the bot"}
	CommandHelp  = Command{Name: "help", Description: "Show help message"}
)

// AllCommands contains all available bot commands for menu registration
var AllCommands = []Command{
	CommandStart,
	CommandHelp,
}

// Callback data tokens for the choice prompt buttons
const (
	DecisionCallbackPrefix   = "decision:"
	DecisionCallbackOriginal = DecisionCallbackPrefix + "original"
	DecisionCallbackCompress = DecisionCallbackPrefix + "compress"
)

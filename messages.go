package main

// Chat message kinds.
const (
	chatKindQuestion = "question"
	chatKindGuess    = "guess"
	chatKindAnswer   = "answer"
	chatKindSystem   = "system"
)

// Fixed personas for non-player chat entries.
const (
	systemSenderID    = "system"
	systemSenderName  = "Game"
	systemSenderColor = "#8B7355"

	oracleSenderID    = "ai"
	oracleSenderName  = "Oracle"
	oracleSenderColor = "#6B5B95"
)

// Player is the public profile of a connected player.
type Player struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Score int    `json:"score"`
}

// ReplyRef attributes an oracle answer to the player it replies to.
type ReplyRef struct {
	PlayerName  string `json:"playerName"`
	PlayerColor string `json:"playerColor"`
}

// ChatMessage is one entry in the round's chat history.
type ChatMessage struct {
	ID          string    `json:"id"`
	PlayerID    string    `json:"playerId"`
	PlayerName  string    `json:"playerName"`
	PlayerColor string    `json:"playerColor"`
	Kind        string    `json:"type"`
	Content     string    `json:"content"`
	Timestamp   int64     `json:"timestamp"`
	ReplyTo     *ReplyRef `json:"replyTo,omitempty"`
}

// Messages coming from clients
type ClientMessage struct {
	Type    string `json:"type"`              // "ping", "question", "message", "new_round", "skip_round", "vote_theme", "confirm_theme", "change_theme"
	Content string `json:"content,omitempty"` // question / message
	ThemeID string `json:"themeId,omitempty"` // vote_theme / confirm_theme
}

// Snapshot is the full room state. Every snapshot is self-sufficient: a
// client must be able to resync from the latest one alone.
type Snapshot struct {
	Players              []Player          `json:"players"`
	PlayerCount          int               `json:"playerCount"`
	Round                int               `json:"round"`
	ChatHistory          []ChatMessage     `json:"chatHistory"`
	ThinkingForPlayers   []string          `json:"thinkingForPlayers"`
	LastWinner           *Player           `json:"lastWinner"`
	HasSecretWord        bool              `json:"hasSecretWord"`
	CurrentTheme         string            `json:"currentTheme"`
	ThemeSelectionActive bool              `json:"themeSelectionActive"`
	ThemeVotes           map[string]string `json:"themeVotes"`
	Themes               []ThemeInfo       `json:"themes"`
}

// WelcomeMessage is sent once to a newly registered player.
type WelcomeMessage struct {
	Type     string `json:"type"` // "welcome"
	PlayerID string `json:"playerId"`
	Player   Player `json:"player"`
	Snapshot
}

// StateMessage is broadcast on any roster/theme/round change.
type StateMessage struct {
	Type string `json:"type"` // "state"
	Snapshot
}

// ChatEventMessage broadcasts a single chat history append.
type ChatEventMessage struct {
	Type    string      `json:"type"` // "chat_message"
	Message ChatMessage `json:"message"`
}

// ThinkingMessage toggles a per-player thinking indicator and carries the
// full awaiting list so clients never drift.
type ThinkingMessage struct {
	Type               string   `json:"type"` // "thinking"
	PlayerID           string   `json:"playerId"`
	IsThinking         bool     `json:"isThinking"`
	ThinkingForPlayers []string `json:"thinkingForPlayers"`
}

// NewRoundMessage announces a round transition.
type NewRoundMessage struct {
	Type    string   `json:"type"` // "new_round"
	Round   int      `json:"round"`
	Winner  *Player  `json:"winner"`
	Players []Player `json:"players"`
}

// ThemeUpdateMessage broadcasts the vote tally and selection state.
type ThemeUpdateMessage struct {
	Type                 string            `json:"type"` // "theme_update"
	CurrentTheme         string            `json:"currentTheme"`
	ThemeSelectionActive bool              `json:"themeSelectionActive"`
	ThemeVotes           map[string]string `json:"themeVotes"`
	Themes               []ThemeInfo       `json:"themes"`
}

// RoundSkippedMessage reveals the secret word without advancing the round.
type RoundSkippedMessage struct {
	Type  string `json:"type"` // "round_skipped"
	Word  string `json:"word"`
	Theme string `json:"theme"`
}

// ErrorMessage is the only user-visible error channel.
type ErrorMessage struct {
	Type    string `json:"type"` // "error"
	Message string `json:"message"`
}

type PongMessage struct {
	Type string `json:"type"` // "pong"
}

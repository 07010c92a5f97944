// Word Oracle session hub
//
// One process hosts one room. Players join over a websocket, vote on and
// confirm a theme, then take turns asking the oracle questions about a
// secret word drawn from that theme, or guessing it outright with a
// "guess:" prefix.
//
// Concurrency model: inbound client events are processed one at a time by
// the hub's run loop, holding the mutex for each synchronous segment. The
// only suspension points are the collaborator calls (search + completion),
// which run in their own goroutine and re-acquire the mutex on completion.
// Every suspending query captures the round counter as a fencing token at
// accept time; a completion whose token no longer matches the live round is
// discarded without broadcasting, since the game has moved on. Outstanding
// calls are never aborted, only ignored when stale.

package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"golang.org/x/time/rate"
)

var playerColors = []string{
	"#FF6B6B", // coral red
	"#4ECDC4", // teal
	"#FFE66D", // sunny yellow
	"#95E1D3", // mint
	"#F38181", // salmon
	"#AA96DA", // lavender
	"#FCBAD3", // pink
	"#A8D8EA", // sky blue
}

var (
	nameAdjectives = []string{"Happy", "Sleepy", "Bouncy", "Fuzzy", "Cozy", "Silly", "Jolly", "Wiggly"}
	nameAnimals    = []string{"Bunny", "Kitten", "Puppy", "Panda", "Koala", "Otter", "Penguin", "Hamster"}
)

// Name and color are assigned deterministically from join order, so a
// rejoining player may come back under a different identity. Cosmetic only.
func playerName(index int) string {
	return nameAdjectives[index%len(nameAdjectives)] + " " + nameAnimals[index%len(nameAnimals)]
}

type Client struct {
	conn     *websocket.Conn
	send     chan any
	limiter  *rate.Limiter
	playerID string
}

type inboundMessage struct {
	client *Client
	msg    ClientMessage
}

type Hub struct {
	cfg *Config

	register chan *Client
	unreg    chan *Client
	inbound  chan inboundMessage

	completer Completer
	search    Searcher

	// Everything below is guarded by mu, which is shared between the run
	// loop, query-resolution goroutines, and the round-advance timer.
	mu                   sync.Mutex
	clients              map[*Client]bool
	players              []Player
	round                int
	secretWord           string
	chatHistory          []ChatMessage
	awaiting             map[string]bool
	lastWinner           *Player
	currentTheme         string
	themeSelectionActive bool
	themeVotes           map[string]string
	drawer               *wordDrawer
}

func newHub(cfg *Config, completer Completer, search Searcher) *Hub {
	return &Hub{
		cfg:                  cfg,
		register:             make(chan *Client),
		unreg:                make(chan *Client),
		inbound:              make(chan inboundMessage),
		completer:            completer,
		search:               search,
		clients:              make(map[*Client]bool),
		chatHistory:          []ChatMessage{},
		awaiting:             make(map[string]bool),
		themeSelectionActive: true,
		themeVotes:           make(map[string]string),
		drawer:               newWordDrawer(),
	}
}

func (h *Hub) run() {
	for {
		select {
		case c := <-h.register:
			h.handleRegister(c)

		case c := <-h.unreg:
			h.handleUnregister(c)

		case in := <-h.inbound:
			h.handleMessage(in.client, in.msg)
		}
	}
}

// newPlayerIDLocked generates a short random id that does not collide with
// any currently connected player. Ids of departed players may recur.
func (h *Hub) newPlayerIDLocked() string {
	for {
		buf := make([]byte, 4)
		if _, err := rand.Read(buf); err != nil {
			panic("crypto/rand failure: " + err.Error())
		}
		id := hex.EncodeToString(buf)

		collision := false
		for _, p := range h.players {
			if p.ID == id {
				collision = true
				break
			}
		}
		if !collision {
			return id
		}
	}
}

func (h *Hub) playerLocked(id string) *Player {
	for i := range h.players {
		if h.players[i].ID == id {
			return &h.players[i]
		}
	}
	return nil
}

func (h *Hub) handleRegister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.players) >= h.cfg.maxPlayers {
		c.send <- ErrorMessage{
			Type:    "error",
			Message: "Game is full!",
		}
		close(c.send)
		return
	}

	index := len(h.players)
	player := Player{
		ID:    h.newPlayerIDLocked(),
		Name:  playerName(index),
		Color: playerColors[index%len(playerColors)],
	}
	c.playerID = player.ID

	h.clients[c] = true
	h.players = append(h.players, player)

	c.send <- WelcomeMessage{
		Type:     "welcome",
		PlayerID: player.ID,
		Player:   player,
		Snapshot: h.snapshotLocked(),
	}

	h.chatHistory = append(h.chatHistory, systemMessage(player.Name+" joined the game!"))
	h.broadcastStateLocked()

	logf(h.cfg, "GAMES: Player %q (%s) joined. Total: %d", player.Name, player.ID, len(h.players))
}

// handleUnregister removes the client's sink and player entry. Safe to call
// more than once for the same client.
func (h *Hub) handleUnregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}

	if c.playerID == "" {
		return
	}

	idx := -1
	for i := range h.players {
		if h.players[i].ID == c.playerID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}

	player := h.players[idx]
	h.players = append(h.players[:idx], h.players[idx+1:]...)
	delete(h.awaiting, player.ID)

	h.chatHistory = append(h.chatHistory, systemMessage(player.Name+" left the game."))
	h.broadcastStateLocked()

	logf(h.cfg, "GAMES: Player %q (%s) left. Total: %d", player.Name, player.ID, len(h.players))
}

func (h *Hub) handleMessage(c *Client, msg ClientMessage) {
	switch msg.Type {
	case "ping":
		h.handlePing(c)
	case "question", "message":
		if q := h.beginChat(c, msg.Content); q != nil {
			go h.resolveQuery(q)
		}
	case "new_round":
		h.handleNewRound()
	case "skip_round":
		h.handleSkipRound()
	case "vote_theme":
		h.handleVoteTheme(c, msg.ThemeID)
	case "confirm_theme":
		h.handleConfirmTheme(c, msg.ThemeID)
	case "change_theme":
		h.handleChangeTheme()
	default:
		logf(h.cfg, "GAMES: Ignoring unknown message type %q from %s", msg.Type, c.playerID)
	}
}

func (h *Hub) handlePing(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.playerLocked(c.playerID) == nil {
		return
	}

	select {
	case c.send <- PongMessage{Type: "pong"}:
	default:
	}
}

// pendingQuery is an accepted question awaiting its oracle answer, carrying
// the round fencing token captured at accept time.
type pendingQuery struct {
	playerID    string
	playerName  string
	playerColor string
	question    string
	secretWord  string
	token       int
}

// beginChat runs the synchronous segment of question/guess handling: guards,
// chat append, thinking toggle, and full guess resolution. It returns a
// non-nil pendingQuery when the message is a question that still needs the
// external collaborators.
func (h *Hub) beginChat(c *Client, content string) *pendingQuery {
	h.mu.Lock()
	defer h.mu.Unlock()

	player := h.playerLocked(c.playerID)
	if player == nil {
		return nil
	}

	// Silent rejects: no active word, or this player already has a request
	// in flight. The in-flight check is a per-player gate, not a global one.
	if h.secretWord == "" || h.awaiting[player.ID] {
		return nil
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	guessWord, isGuess := detectGuess(content)

	kind := chatKindQuestion
	if isGuess {
		kind = chatKindGuess
	}

	msg := newChatMessage(player.ID, player.Name, player.Color, kind, content)
	h.chatHistory = append(h.chatHistory, msg)
	h.broadcastChatLocked(msg)

	h.setThinkingLocked(player.ID, true)

	if isGuess {
		h.resolveGuessLocked(player.ID, guessWord)
		return nil
	}

	return &pendingQuery{
		playerID:    player.ID,
		playerName:  player.Name,
		playerColor: player.Color,
		question:    content,
		secretWord:  h.secretWord,
		token:       h.round,
	}
}

// resolveQuery performs the suspension: search for grounding context, then
// ask the completion collaborator, then apply the result under the fence.
func (h *Hub) resolveQuery(q *pendingQuery) {
	ctx, cancel := context.WithTimeout(context.Background(), h.cfg.queryTimeout)
	defer cancel()

	digest := h.search.Search(ctx, q.secretWord+" "+q.question)
	prompt := buildQuestionPrompt(q.secretWord, digest, q.question)

	answer, err := h.completer.Complete(ctx, oracleSystemPrompt, prompt)
	h.applyAnswer(q, answer, err)
}

// applyAnswer is the arbitration point. A completion whose fencing token no
// longer matches the live round only clears the awaiting flag; nothing is
// appended or broadcast. The same applies when the player's awaiting entry
// was already cleared, which covers queries preempted by a winning guess
// during the grace window and players who disconnected mid-query. A
// collaborator failure likewise surfaces no content, and the question goes
// unanswered.
func (h *Hub) applyAnswer(q *pendingQuery, answer string, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.round != q.token || !h.awaiting[q.playerID] {
		delete(h.awaiting, q.playerID)
		return
	}

	if err != nil {
		logf(h.cfg, "GAMES: Oracle query for %q failed: %v", q.playerName, err)
		h.setThinkingLocked(q.playerID, false)
		return
	}

	msg := newChatMessage(oracleSenderID, oracleSenderName, oracleSenderColor, chatKindAnswer, answer)
	msg.ReplyTo = &ReplyRef{PlayerName: q.playerName, PlayerColor: q.playerColor}
	h.chatHistory = append(h.chatHistory, msg)
	h.broadcastChatLocked(msg)

	h.setThinkingLocked(q.playerID, false)
}

// resolveGuessLocked settles a guess synchronously. A correct guess always
// ends the round regardless of other players' in-flight queries: their
// awaiting entries are cleared here and their late answers fall to the
// fencing check once the round advances.
func (h *Hub) resolveGuessLocked(playerID, guessWord string) {
	player := h.playerLocked(playerID)
	if player == nil {
		return
	}

	if !guessMatches(guessWord, h.secretWord) {
		msg := newChatMessage(oracleSenderID, oracleSenderName, oracleSenderColor, chatKindAnswer, "No, that's not it. Keep trying!")
		msg.ReplyTo = &ReplyRef{PlayerName: player.Name, PlayerColor: player.Color}
		h.chatHistory = append(h.chatHistory, msg)
		h.broadcastChatLocked(msg)
		h.setThinkingLocked(playerID, false)
		return
	}

	h.clearAllThinkingLocked()

	player.Score++
	winner := *player

	msg := newChatMessage(oracleSenderID, oracleSenderName, oracleSenderColor, chatKindAnswer,
		fmt.Sprintf("YES! The word was %q! %s wins this round!", h.secretWord, winner.Name))
	msg.ReplyTo = &ReplyRef{PlayerName: winner.Name, PlayerColor: winner.Color}
	h.chatHistory = append(h.chatHistory, msg)
	h.broadcastChatLocked(msg)

	logf(h.cfg, "GAMES: %q guessed %q in round %d", winner.Name, h.secretWord, h.round)

	// Grace period so players can read the reveal before the board resets.
	time.AfterFunc(h.cfg.roundGrace, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.startNewRoundLocked(&winner)
	})
}

func (h *Hub) handleNewRound() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.awaiting) > 0 {
		return
	}
	h.startNewRoundLocked(nil)
}

// handleSkipRound reveals the current word without advancing the round. The
// round does not auto-advance afterwards; clients are expected to request a
// new round or a theme change once they have seen the reveal.
func (h *Hub) handleSkipRound() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.awaiting) > 0 || h.secretWord == "" {
		return
	}

	h.broadcastLocked(RoundSkippedMessage{
		Type:  "round_skipped",
		Word:  h.secretWord,
		Theme: h.currentTheme,
	})
}

func (h *Hub) handleVoteTheme(c *Client, themeID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.playerLocked(c.playerID) == nil {
		return
	}
	if !h.themeSelectionActive || !validTheme(themeID) {
		return
	}

	// Last vote wins.
	h.themeVotes[c.playerID] = themeID
	h.broadcastThemeUpdateLocked()
}

func (h *Hub) handleConfirmTheme(c *Client, themeID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.playerLocked(c.playerID) == nil {
		return
	}
	if !h.themeSelectionActive || !validTheme(themeID) {
		return
	}

	h.currentTheme = themeID
	h.themeSelectionActive = false
	h.themeVotes = make(map[string]string)
	h.round = 0
	h.chatHistory = []ChatMessage{}
	h.secretWord = ""

	h.broadcastThemeUpdateLocked()
	h.startNewRoundLocked(nil)
}

func (h *Hub) handleChangeTheme() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.awaiting) > 0 {
		return
	}

	h.themeSelectionActive = true
	h.currentTheme = ""
	h.themeVotes = make(map[string]string)
	h.round = 0
	h.chatHistory = []ChatMessage{}
	h.secretWord = ""
	h.clearAllThinkingLocked()

	h.broadcastThemeUpdateLocked()
	h.broadcastStateLocked()
}

// startNewRoundLocked advances the round: increment the counter, wipe chat
// and awaiting state, redraw a word for the current theme, and announce.
// A no-op during theme selection, which also covers a win timer firing after
// the room has returned to theme selection.
func (h *Hub) startNewRoundLocked(winner *Player) {
	if h.themeSelectionActive || h.currentTheme == "" {
		return
	}

	h.round++
	h.chatHistory = []ChatMessage{}
	h.lastWinner = winner
	h.clearAllThinkingLocked()

	word := h.drawer.draw(h.currentTheme)
	if word == "" {
		log.Printf("no words available for theme %q", h.currentTheme)
		return
	}
	h.secretWord = word

	logf(h.cfg, "GAMES: Round %d started. Secret word: %q (theme %s)", h.round, word, h.currentTheme)

	themeName := gameThemes[h.currentTheme].Name

	var content string
	if winner != nil {
		content = fmt.Sprintf("Round %d begins! %s won the last round! Theme: %s", h.round, winner.Name, themeName)
	} else {
		content = fmt.Sprintf("Round %d begins! I'm thinking of something from %q... Ask questions to figure out what it is!", h.round, themeName)
	}

	sysMsg := systemMessage(content)
	h.chatHistory = append(h.chatHistory, sysMsg)

	h.broadcastLocked(NewRoundMessage{
		Type:    "new_round",
		Round:   h.round,
		Winner:  winner,
		Players: h.playersCopyLocked(),
	})
	h.broadcastChatLocked(sysMsg)
}

func newChatMessage(senderID, senderName, senderColor, kind, content string) ChatMessage {
	return ChatMessage{
		ID:          uuid.NewString(),
		PlayerID:    senderID,
		PlayerName:  senderName,
		PlayerColor: senderColor,
		Kind:        kind,
		Content:     content,
		Timestamp:   time.Now().UnixMilli(),
	}
}

func systemMessage(content string) ChatMessage {
	return newChatMessage(systemSenderID, systemSenderName, systemSenderColor, chatKindSystem, content)
}

func (h *Hub) setThinkingLocked(playerID string, isThinking bool) {
	if isThinking {
		h.awaiting[playerID] = true
	} else {
		delete(h.awaiting, playerID)
	}

	h.broadcastLocked(ThinkingMessage{
		Type:               "thinking",
		PlayerID:           playerID,
		IsThinking:         isThinking,
		ThinkingForPlayers: h.awaitingListLocked(),
	})
}

func (h *Hub) clearAllThinkingLocked() {
	clear(h.awaiting)

	h.broadcastLocked(ThinkingMessage{
		Type:               "thinking",
		IsThinking:         false,
		ThinkingForPlayers: []string{},
	})
}

func (h *Hub) awaitingListLocked() []string {
	list := make([]string, 0, len(h.awaiting))
	for id := range h.awaiting {
		list = append(list, id)
	}
	sort.Strings(list)
	return list
}

func (h *Hub) playersCopyLocked() []Player {
	players := make([]Player, len(h.players))
	copy(players, h.players)
	return players
}

func (h *Hub) snapshotLocked() Snapshot {
	history := make([]ChatMessage, len(h.chatHistory))
	copy(history, h.chatHistory)

	votes := make(map[string]string, len(h.themeVotes))
	for id, theme := range h.themeVotes {
		votes[id] = theme
	}

	return Snapshot{
		Players:              h.playersCopyLocked(),
		PlayerCount:          len(h.players),
		Round:                h.round,
		ChatHistory:          history,
		ThinkingForPlayers:   h.awaitingListLocked(),
		LastWinner:           h.lastWinner,
		HasSecretWord:        h.secretWord != "",
		CurrentTheme:         h.currentTheme,
		ThemeSelectionActive: h.themeSelectionActive,
		ThemeVotes:           votes,
		Themes:               themesArray(),
	}
}

// broadcastLocked delivers a message to every connected client, best-effort.
// A client whose send buffer is full is evicted rather than blocking the
// rest of the room.
func (h *Hub) broadcastLocked(msg any) {
	for client := range h.clients {
		select {
		case client.send <- msg:
		default:
			delete(h.clients, client)
			close(client.send)
		}
	}
}

func (h *Hub) broadcastChatLocked(msg ChatMessage) {
	h.broadcastLocked(ChatEventMessage{
		Type:    "chat_message",
		Message: msg,
	})
}

func (h *Hub) broadcastStateLocked() {
	h.broadcastLocked(StateMessage{
		Type:     "state",
		Snapshot: h.snapshotLocked(),
	})
}

func (h *Hub) broadcastThemeUpdateLocked() {
	votes := make(map[string]string, len(h.themeVotes))
	for id, theme := range h.themeVotes {
		votes[id] = theme
	}

	h.broadcastLocked(ThemeUpdateMessage{
		Type:                 "theme_update",
		CurrentTheme:         h.currentTheme,
		ThemeSelectionActive: h.themeSelectionActive,
		ThemeVotes:           votes,
		Themes:               themesArray(),
	})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func serveWS(cfg *Config, hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade error:", err)
			return
		}

		client := &Client{
			conn:    conn,
			send:    make(chan any, 16),
			limiter: rate.NewLimiter(5, 10),
		}

		hub.register <- client

		go client.writePump()
		client.readPump(cfg, hub)
	}
}

func (c *Client) readPump(cfg *Config, h *Hub) {
	defer func() {
		h.unreg <- c
		_ = c.conn.Close()
	}()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		if !c.limiter.Allow() {
			continue
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			// Malformed payloads are logged and dropped; the connection
			// stays up.
			logf(cfg, "GAMES: Dropping malformed payload from %s: %v", c.playerID, err)
			continue
		}

		h.inbound <- inboundMessage{
			client: c,
			msg:    msg,
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

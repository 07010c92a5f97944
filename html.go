package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// Minimal browser client for quick testing. It speaks the full message
// protocol but leaves the fancy rendering to real frontends.
const appShellHTML = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Word Oracle</title>
<style>
  body { font-family: system-ui, sans-serif; margin: 2rem auto; max-width: 40rem; }
  h1 { margin-bottom: 0.25rem; }
  #status { color: #666; font-size: 0.9rem; margin-bottom: 1rem; }
  #themes button { margin: 0.15rem; }
  #chat { list-style: none; padding: 0; }
  #chat li { padding: 0.25rem 0; border-bottom: 1px solid #eee; }
  #players span { margin-right: 0.75rem; }
  #controls { margin: 0.5rem 0; }
  input[type=text] { width: 70%; }
</style>
</head>
<body>
<h1>Word Oracle</h1>
<div id="status">Connecting…</div>
<div id="players"></div>
<div id="themes"></div>
<ul id="chat"></ul>
<div id="controls">
  <input type="text" id="input" placeholder='Ask a question, or "guess: word"'>
  <button id="send">Send</button>
  <button id="skip">Skip round</button>
  <button id="next">New round</button>
  <button id="change">Change theme</button>
</div>

<script>
(function() {
  const statusEl = document.getElementById('status');
  const playersEl = document.getElementById('players');
  const themesEl = document.getElementById('themes');
  const chatEl = document.getElementById('chat');
  const inputEl = document.getElementById('input');

  const proto = (location.protocol === 'https:') ? 'wss://' : 'ws://';
  const wsPath = location.pathname.replace(/\/$/, '') + '/ws';
  const ws = new WebSocket(proto + location.host + wsPath);

  let me = null;

  function renderPlayers(players, thinking) {
    playersEl.innerHTML = '';
    (players || []).forEach(function(p) {
      const span = document.createElement('span');
      span.style.color = p.color;
      span.textContent = p.name + ' (' + p.score + ')' +
        ((thinking || []).includes(p.id) ? ' 🤔' : '');
      playersEl.appendChild(span);
    });
  }

  function renderThemes(state) {
    themesEl.innerHTML = '';
    if (!state.themeSelectionActive) { return; }
    (state.themes || []).forEach(function(t) {
      const btn = document.createElement('button');
      const votes = Object.values(state.themeVotes || {}).filter(function(v) { return v === t.id; }).length;
      btn.textContent = t.icon + ' ' + t.name + (votes ? ' (' + votes + ')' : '');
      btn.onclick = function() { ws.send(JSON.stringify({ type: 'vote_theme', themeId: t.id })); };
      btn.ondblclick = function() { ws.send(JSON.stringify({ type: 'confirm_theme', themeId: t.id })); };
      themesEl.appendChild(btn);
    });
  }

  function appendChat(m) {
    const li = document.createElement('li');
    li.style.color = m.playerColor;
    li.textContent = m.playerName + ': ' + m.content;
    chatEl.appendChild(li);
  }

  function renderHistory(history) {
    chatEl.innerHTML = '';
    (history || []).forEach(appendChat);
  }

  ws.onopen = function() { statusEl.textContent = 'Connected.'; };
  ws.onclose = function() { statusEl.textContent = 'Disconnected.'; };

  ws.onmessage = function(event) {
    const msg = JSON.parse(event.data);
    switch (msg.type) {
      case 'welcome':
        me = msg.player;
        statusEl.textContent = 'You are ' + me.name + '.';
        renderPlayers(msg.players, msg.thinkingForPlayers);
        renderThemes(msg);
        renderHistory(msg.chatHistory);
        break;
      case 'state':
        renderPlayers(msg.players, msg.thinkingForPlayers);
        renderThemes(msg);
        renderHistory(msg.chatHistory);
        break;
      case 'chat_message':
        appendChat(msg.message);
        break;
      case 'thinking':
        break;
      case 'new_round':
        renderPlayers(msg.players, []);
        chatEl.innerHTML = '';
        break;
      case 'theme_update':
        renderThemes(msg);
        break;
      case 'round_skipped':
        appendChat({ playerName: 'Game', playerColor: '#8B7355', content: 'The word was "' + msg.word + '".' });
        break;
      case 'error':
        statusEl.textContent = msg.message;
        break;
    }
  };

  document.getElementById('send').onclick = function() {
    const content = inputEl.value.trim();
    if (!content) { return; }
    ws.send(JSON.stringify({ type: 'question', content: content }));
    inputEl.value = '';
  };
  document.getElementById('skip').onclick = function() { ws.send(JSON.stringify({ type: 'skip_round' })); };
  document.getElementById('next').onclick = function() { ws.send(JSON.stringify({ type: 'new_round' })); };
  document.getElementById('change').onclick = function() { ws.send(JSON.stringify({ type: 'change_theme' })); };
  inputEl.addEventListener('keydown', function(e) {
    if (e.key === 'Enter') { document.getElementById('send').onclick(); }
  });

  setInterval(function() {
    if (ws.readyState === WebSocket.OPEN) {
      ws.send(JSON.stringify({ type: 'ping' }));
    }
  }, 30000);
})();
</script>
</body>
</html>
`

func serveAppShell(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		securityHeaders(cfg, w)

		_, _ = w.Write([]byte(appShellHTML))
	}
}

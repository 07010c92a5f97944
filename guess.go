package main

import (
	"regexp"
	"strings"
)

var (
	guessPrefix    = regexp.MustCompile(`(?i)^guess:\s*(.+)$`)
	leadingArticle = regexp.MustCompile(`(?i)^(the|a|an)\s+`)
)

// detectGuess reports whether a chat message is a guess attempt. A guess is
// any message with a case-insensitive "guess:" prefix; the returned string is
// the guessed word with the prefix stripped. Anything else is a question.
func detectGuess(message string) (string, bool) {
	match := guessPrefix.FindStringSubmatch(strings.TrimSpace(message))
	if match == nil {
		return "", false
	}
	return strings.TrimSpace(match[1]), true
}

func normalizeGuess(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return leadingArticle.ReplaceAllString(s, "")
}

// guessMatches reports whether a guess should be treated as correct for the
// secret word. After normalization (lowercase, trim, leading article strip),
// a match is an exact equality, a trailing-s singular/plural variant in
// either direction, or a substring containment in either direction when both
// normalized strings are longer than 3 characters. The substring rule is
// knowingly permissive ("White Tiger Zoo" matches "Tiger"); the length floor
// keeps throwaway guesses like "I" from matching by containment.
func guessMatches(guess, secretWord string) bool {
	if secretWord == "" {
		return false
	}

	g := normalizeGuess(guess)
	w := normalizeGuess(secretWord)

	if g == w {
		return true
	}

	if g+"s" == w || g == w+"s" {
		return true
	}

	if strings.Contains(g, w) || strings.Contains(w, g) {
		if len(w) > 3 && len(g) > 3 {
			return true
		}
	}

	return false
}

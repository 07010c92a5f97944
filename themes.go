package main

import (
	"crypto/rand"
)

// Theme is a named category of secret words. The catalog is immutable at
// runtime; only the per-theme used-word sets change.
type Theme struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Words       []string `json:"-"`
}

// ThemeInfo is the client-facing view of a theme, without the word list.
type ThemeInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

var themeOrder = []string{
	"random", "sports", "celebrities", "food", "animals", "movies",
	"music", "history", "science", "geography", "gaming", "literature",
}

var gameThemes = map[string]Theme{
	"random": {
		ID:          "random",
		Name:        "Random",
		Description: "A mix of everything",
		Icon:        "🎲",
		Words:       []string{"Eiffel Tower", "Pizza", "Einstein", "Bitcoin", "Titanic", "Pikachu", "Yoga", "Spotify", "Mars", "Shakespeare", "Sushi", "Cleopatra", "iPhone", "Minecraft", "Mona Lisa", "Taj Mahal", "Beyoncé", "Netflix", "Dinosaur", "Pyramids"},
	},
	"sports": {
		ID:          "sports",
		Name:        "Sports",
		Description: "Athletes, teams, equipment",
		Icon:        "⚽",
		Words:       []string{"Michael Jordan", "Serena Williams", "FIFA World Cup", "Olympics", "Basketball", "Tennis Racket", "Super Bowl", "Usain Bolt", "Muhammad Ali", "Cristiano Ronaldo", "Lionel Messi", "Tiger Woods", "LeBron James", "Tom Brady", "Wimbledon", "Golf", "Swimming", "Marathon", "Skateboard", "Baseball"},
	},
	"celebrities": {
		ID:          "celebrities",
		Name:        "Celebrities",
		Description: "Famous people from all fields",
		Icon:        "⭐",
		Words:       []string{"Taylor Swift", "Elon Musk", "Oprah Winfrey", "Kim Kardashian", "Dwayne Johnson", "Lady Gaga", "Brad Pitt", "Rihanna", "Will Smith", "Jennifer Lopez", "Kanye West", "Billie Eilish", "Tom Hanks", "Ariana Grande", "Drake", "Zendaya", "Bad Bunny", "Selena Gomez", "Leonardo DiCaprio", "BTS"},
	},
	"food": {
		ID:          "food",
		Name:        "Food & Drinks",
		Description: "Dishes, ingredients, beverages",
		Icon:        "🍕",
		Words:       []string{"Pizza", "Sushi", "Tacos", "Chocolate", "Coffee", "Coca-Cola", "Hamburger", "Ice Cream", "Pasta", "Avocado", "Starbucks", "Croissant", "Ramen", "Cheese", "Wine", "Beer", "Pancakes", "Curry", "Lobster", "Kimchi"},
	},
	"animals": {
		ID:          "animals",
		Name:        "Animals",
		Description: "Creatures from around the world",
		Icon:        "🦁",
		Words:       []string{"Lion", "Elephant", "Dolphin", "Penguin", "Koala", "Giraffe", "Panda", "Tiger", "Eagle", "Shark", "Octopus", "Butterfly", "Gorilla", "Kangaroo", "Wolf", "Owl", "Flamingo", "Cheetah", "Whale", "Sloth"},
	},
	"movies": {
		ID:          "movies",
		Name:        "Movies & TV",
		Description: "Films, shows, characters",
		Icon:        "🎬",
		Words:       []string{"Star Wars", "Harry Potter", "The Godfather", "Titanic", "Avatar", "Spider-Man", "Batman", "Game of Thrones", "Breaking Bad", "Friends", "The Office", "Stranger Things", "Squid Game", "Shrek", "Frozen", "Jurassic Park", "The Lion King", "Marvel", "James Bond", "The Simpsons"},
	},
	"music": {
		ID:          "music",
		Name:        "Music",
		Description: "Artists, songs, instruments",
		Icon:        "🎵",
		Words:       []string{"The Beatles", "Michael Jackson", "Elvis Presley", "Madonna", "Guitar", "Piano", "Spotify", "Grammy Awards", "Rolling Stones", "Queen", "Bob Marley", "Eminem", "Adele", "Ed Sheeran", "Drums", "Violin", "Hip Hop", "Jazz", "Woodstock", "Coachella"},
	},
	"history": {
		ID:          "history",
		Name:        "History",
		Description: "Historical figures and events",
		Icon:        "📜",
		Words:       []string{"Cleopatra", "Napoleon", "World War II", "Abraham Lincoln", "Ancient Rome", "Egyptian Pyramids", "Julius Caesar", "French Revolution", "Martin Luther King", "Leonardo da Vinci", "Queen Victoria", "Alexander the Great", "Genghis Khan", "Renaissance", "Industrial Revolution", "Cold War", "Moon Landing", "Titanic", "Berlin Wall", "Columbus"},
	},
	"science": {
		ID:          "science",
		Name:        "Science & Tech",
		Description: "Inventions, discoveries, gadgets",
		Icon:        "🔬",
		Words:       []string{"iPhone", "Tesla", "Google", "DNA", "Black Hole", "Artificial Intelligence", "Electricity", "Internet", "Robot", "Vaccine", "Atom", "SpaceX", "Microsoft", "Amazon", "Telescope", "Microscope", "Solar Panel", "5G", "Blockchain", "Quantum Computer"},
	},
	"geography": {
		ID:          "geography",
		Name:        "Geography",
		Description: "Places, landmarks, countries",
		Icon:        "🌍",
		Words:       []string{"Eiffel Tower", "Great Wall of China", "Mount Everest", "Amazon River", "Sahara Desert", "Grand Canyon", "Niagara Falls", "Statue of Liberty", "Big Ben", "Colosseum", "Sydney Opera House", "Machu Picchu", "Taj Mahal", "Antarctica", "Hawaii", "Tokyo", "Paris", "New York", "Dubai", "Australia"},
	},
	"gaming": {
		ID:          "gaming",
		Name:        "Video Games",
		Description: "Games, characters, consoles",
		Icon:        "🎮",
		Words:       []string{"Minecraft", "Fortnite", "Mario", "Zelda", "PlayStation", "Xbox", "Nintendo", "Pokémon", "Grand Theft Auto", "Call of Duty", "Tetris", "Sonic", "League of Legends", "Roblox", "Among Us", "Elden Ring", "God of War", "Pac-Man", "Donkey Kong", "Steam"},
	},
	"literature": {
		ID:          "literature",
		Name:        "Literature",
		Description: "Books, authors, characters",
		Icon:        "📚",
		Words:       []string{"Harry Potter", "Shakespeare", "Sherlock Holmes", "Romeo and Juliet", "Lord of the Rings", "Stephen King", "Dracula", "Frankenstein", "Pride and Prejudice", "The Great Gatsby", "Moby Dick", "Alice in Wonderland", "Hamlet", "Charles Dickens", "Edgar Allan Poe", "Agatha Christie", "Game of Thrones", "The Hunger Games", "1984", "Don Quixote"},
	},
}

func validTheme(id string) bool {
	_, ok := gameThemes[id]
	return ok
}

func themesArray() []ThemeInfo {
	themes := make([]ThemeInfo, 0, len(themeOrder))
	for _, id := range themeOrder {
		t := gameThemes[id]
		themes = append(themes, ThemeInfo{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Icon:        t.Icon,
		})
	}
	return themes
}

// randomIndex picks a uniform index in [0, n) via crypto/rand, using
// rejection sampling to avoid modulo bias.
func randomIndex(n int) int {
	if n <= 1 {
		return 0
	}
	max := byte(255 - (256 % n))
	buf := make([]byte, 8)
	for {
		if _, err := rand.Read(buf); err != nil {
			panic("crypto/rand failure: " + err.Error())
		}
		for _, b := range buf {
			if b <= max {
				return int(b) % n
			}
		}
	}
}

// wordDrawer tracks which words have already been drawn per theme, so the
// same word is not repeated until a theme's catalog is exhausted.
type wordDrawer struct {
	used map[string]map[string]bool
}

func newWordDrawer() *wordDrawer {
	return &wordDrawer{
		used: make(map[string]map[string]bool),
	}
}

// draw returns a random word from the theme that has not been used this era.
// When every word has been drawn, the used set is cleared and drawing resumes
// from the full list. Returns "" for an unknown theme.
func (d *wordDrawer) draw(themeID string) string {
	theme, ok := gameThemes[themeID]
	if !ok {
		return ""
	}

	used, ok := d.used[themeID]
	if !ok {
		used = make(map[string]bool)
		d.used[themeID] = used
	}

	available := make([]string, 0, len(theme.Words))
	for _, w := range theme.Words {
		if !used[w] {
			available = append(available, w)
		}
	}

	if len(available) == 0 {
		clear(used)
		return theme.Words[randomIndex(len(theme.Words))]
	}

	word := available[randomIndex(len(available))]
	used[word] = true
	return word
}

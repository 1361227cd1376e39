package wordface

// Words is the word bank traced along every contour.
var Words = []string{
	"confident", "radiant", "wise", "graceful", "beautiful", "generous",
	"brave", "brilliant", "fearless", "sunny", "unique", "charming",
}

// Word returns the word for glyph k, cycling through words.
func Word(words []string, k int) string {
	n := len(words)
	return words[((k%n)+n)%n]
}

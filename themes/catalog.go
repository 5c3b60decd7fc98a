package themes

import "strings"

// CursorShape selects how the typing cursor is drawn.
type CursorShape int

const (
	CursorBlock CursorShape = iota
	CursorBar
	CursorUnderscore
)

// Cursor pairs a catalog id with its drawable shape.
type Cursor struct {
	ID    string
	Shape CursorShape
}

// Cursors is the cursor catalog. The first entry is the default.
var Cursors = []Cursor{
	{ID: "block", Shape: CursorBlock},
	{ID: "bar", Shape: CursorBar},
	{ID: "underscore", Shape: CursorUnderscore},
}

// Language describes one runnable tutorial language: the file name
// shown in the editor chrome and the shell command the terminal types.
type Language struct {
	ID       string
	Display  string
	Filename string
	Command  string
}

// Languages is the rotation used by automated content generation as
// well as the lookup table for explicit requests. First entry default.
var Languages = []Language{
	{ID: "javascript", Display: "JavaScript", Filename: "index.js", Command: "node index.js"},
	{ID: "python", Display: "Python", Filename: "main.py", Command: "python3 main.py"},
	{ID: "go", Display: "Go", Filename: "main.go", Command: "go run main.go"},
	{ID: "java", Display: "Java", Filename: "Main.java", Command: "java Main.java"},
}

// Voices lists the narration voices for speech synthesis. First entry
// is the default.
var Voices = []string{
	"en-US-ChristopherNeural",
	"en-US-JennyNeural",
	"en-US-GuyNeural",
	"en-GB-RyanNeural",
	"en-AU-NatashaNeural",
}

// CursorByID resolves a cursor, defaulting to the block shape.
func CursorByID(id string) Cursor {
	for _, c := range Cursors {
		if c.ID == id {
			return c
		}
	}
	return Cursors[0]
}

// LanguageByID resolves a language by id or display name, case kept
// simple because ids are lowercase by construction. Unknown ids fall
// back to JavaScript.
func LanguageByID(id string) Language {
	for _, l := range Languages {
		if l.ID == id || l.Display == id {
			return l
		}
	}
	return Languages[0]
}

// VoiceByID returns the voice when it exists in the catalog, else the
// default voice.
func VoiceByID(id string) string {
	for _, v := range Voices {
		if v == id {
			return v
		}
	}
	return Voices[0]
}

// DetectLanguage guesses the language of a snippet from surface syntax.
// Used when a request does not name a target language.
func DetectLanguage(code string) Language {
	switch {
	case strings.Contains(code, "System.out.println") || strings.Contains(code, "public class"):
		return LanguageByID("java")
	case strings.Contains(code, "func ") || strings.Contains(code, "fmt.Println") || strings.Contains(code, ":="):
		return LanguageByID("go")
	case strings.Contains(code, "def ") || strings.Contains(code, "elif ") ||
		(strings.Contains(code, "print(") && !strings.Contains(code, "console.")):
		return LanguageByID("python")
	default:
		return LanguageByID("javascript")
	}
}

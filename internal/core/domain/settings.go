package domain

// Settings is the typed view of the configuration file.
type Settings struct {
	Transform TransformSettings
	Messages  MessageSettings
	CutWords  CutWordsSettings
}

// TransformSettings configures query rewriting.
type TransformSettings struct {
	// Schemes applied to every literal.
	Schemes []Scheme

	// Ordering of spellings within a rewritten term.
	Ordering Ordering
}

// ExpandOptions converts the settings into transform options.
func (t TransformSettings) ExpandOptions() ExpandOptions {
	return ExpandOptions{Schemes: t.Schemes, Ordering: t.Ordering}
}

// MessageSettings configures the message store.
type MessageSettings struct {
	// DataDir holds messages.db. Empty means ~/.querytrans/data.
	DataDir string

	// PageSize is the number of rows fetched per page.
	PageSize int

	// PagesPerSecond throttles page fetches. Zero disables throttling.
	PagesPerSecond float64
}

// CutWordsSettings configures word counting.
type CutWordsSettings struct {
	// StopWordsPath is a file with one stop word per line.
	StopWordsPath string

	// UserDictPath is a file with "word tag" lines.
	UserDictPath string

	// MaxWordBytes drops longer words.
	MaxWordBytes int
}

// DefaultPageSize is the number of messages fetched per page.
const DefaultPageSize = 1000

// DefaultSettings returns settings with default values.
func DefaultSettings() Settings {
	return Settings{
		Transform: TransformSettings{
			Schemes:  DefaultSchemes(),
			Ordering: OrderingInputFirst,
		},
		Messages: MessageSettings{
			PageSize: DefaultPageSize,
		},
		CutWords: CutWordsSettings{
			StopWordsPath: "StopWords-simple.txt",
			UserDictPath:  "userdict.txt",
			MaxWordBytes:  DefaultCountOptions().MaxWordBytes,
		},
	}
}

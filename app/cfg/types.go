package cfg

type Cfg struct {
	// Job configuration
	Profile string
	FeedURL string

	// Output configuration
	DraftsDir string
	StateFile string
	SeenCap   int
	DBPath    string
	DryRun    bool

	// Summarization
	Summarizer   string
	GeminiModel  string
	GeminiAPIKey string

	// Network
	UserAgent   string
	FeedTimeout int // seconds
	PageTimeout int // seconds
	WorkerCount int

	// Application metadata
	Debug   bool
	Version string
}

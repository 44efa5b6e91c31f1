package search

// CategoryConfig encapsulates search parameters for one knowledge category
type CategoryConfig struct {
	Thresholds []float64 // tried strictest first; first non-empty result wins
	Limit      int
	ScanLimit  int // cap on most-recent rows fetched for the manual scan
}

// Config holds per-category search parameters
type Config struct {
	CoverLetters CategoryConfig
	Projects     CategoryConfig
	Skills       CategoryConfig
}

// DefaultConfig returns the production search configuration. Skills use a
// looser cascade because short skill descriptions embed with lower absolute
// similarity than full letters or project writeups.
func DefaultConfig() Config {
	return Config{
		CoverLetters: CategoryConfig{
			Thresholds: []float64{0.3, 0.2, 0.1, 0.05},
			Limit:      4,
			ScanLimit:  20,
		},
		Projects: CategoryConfig{
			Thresholds: []float64{0.3, 0.2, 0.1, 0.05},
			Limit:      3,
			ScanLimit:  20,
		},
		Skills: CategoryConfig{
			Thresholds: []float64{0.2, 0.15, 0.1, 0.05},
			Limit:      8,
			ScanLimit:  50,
		},
	}
}

package domain

// QueryMode is the retrieval mode a query resolves to. Selected once per
// query, never mutated afterwards.
type QueryMode string

const (
	ModeQA         QueryMode = "qa"
	ModeDeepThink  QueryMode = "deepthink"
	ModeBrainstorm QueryMode = "brainstorm"
	ModePolicy     QueryMode = "policy"
	ModeCompliance QueryMode = "compliance"
)

// ModeConfig carries the per-mode retrieval tunables. The table is
// static, process-wide and read-only after load.
type ModeConfig struct {
	CandidateCount  int     `json:"candidate_count"`
	DiversityWeight float64 `json:"diversity_weight"`
	RewriteCount    int     `json:"rewrite_count"`
	HopCount        int     `json:"hop_count"`
}

var modeConfigs = map[QueryMode]ModeConfig{
	ModeQA:         {CandidateCount: 10, DiversityWeight: 0.1, RewriteCount: 1, HopCount: 1},
	ModeDeepThink:  {CandidateCount: 20, DiversityWeight: 0.3, RewriteCount: 3, HopCount: 2},
	ModeBrainstorm: {CandidateCount: 25, DiversityWeight: 0.5, RewriteCount: 4, HopCount: 2},
	ModePolicy:     {CandidateCount: 15, DiversityWeight: 0.2, RewriteCount: 2, HopCount: 1},
	ModeCompliance: {CandidateCount: 12, DiversityWeight: 0.15, RewriteCount: 2, HopCount: 1},
}

// ConfigFor resolves the configuration record for a mode, falling back
// to the qa configuration for unknown modes.
func ConfigFor(mode QueryMode) ModeConfig {
	if cfg, ok := modeConfigs[mode]; ok {
		return cfg
	}
	return modeConfigs[ModeQA]
}

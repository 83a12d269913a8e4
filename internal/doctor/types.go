package doctor

// IssueCategory groups issues by type.
type IssueCategory string

const (
	// CategoryTools represents missing executables or an unreachable engine.
	CategoryTools IssueCategory = "tools"
	// CategoryConfig represents problems with the config or templates.
	CategoryConfig IssueCategory = "config"
	// CategoryProject represents problems in the project's .devcontainer.
	CategoryProject IssueCategory = "project"
)

// Fix actions.
const (
	FixNone          = ""
	FixRemoveLiveEnv = "remove_live_env"
	FixInitConfig    = "init_config"
)

// Issue represents a problem detected by doctor.
type Issue struct {
	Key         string        // what was checked (path, executable, name)
	Description string        // human-readable description
	FixAction   string        // what --fix would do
	Category    IssueCategory // issue category
}

// Stats tracks passed checks by category.
type Stats struct {
	ToolsOK   int
	ConfigOK  int
	ProjectOK int
	Instances int  // saved devcontainers found
	Live      bool // a devcontainer is live
}

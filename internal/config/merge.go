package config

// MergeLocal merges a per-project config into a global config,
// returning a new Config without mutating the global.
// Returns global unchanged if local is nil.
func MergeLocal(global *Config, local *LocalConfig) *Config {
	if local == nil {
		return global
	}

	// Fields missing from LocalConfig (Folder, Log, Theme) are global-only.
	merged := *global

	if local.TemplatesDir != "" {
		merged.TemplatesDir = local.TemplatesDir
	}

	if local.Compose.Command != "" {
		merged.Compose.Command = local.Compose.Command
	}
	if local.Compose.StopTimeout != nil {
		merged.Compose.StopTimeout = *local.Compose.StopTimeout
	}

	if local.Hooks.Disabled != nil {
		merged.Hooks.Disabled = *local.Hooks.Disabled
	}
	if local.Hooks.PersistAnswers != nil {
		merged.Hooks.PersistAnswers = *local.Hooks.PersistAnswers
	}
	if local.Hooks.Timeout != nil {
		merged.Hooks.Timeout = *local.Hooks.Timeout
	}

	merged.Defaults = mergeDefaults(global.Defaults, local.Defaults)
	return &merged
}

func mergeDefaults(global, local InitDefaults) InitDefaults {
	out := global
	for _, f := range []struct {
		dst *string
		src string
	}{
		{&out.Template, local.Template},
		{&out.Shell, local.Shell},
		{&out.ShutdownAction, local.ShutdownAction},
		{&out.Dockerfile, local.Dockerfile},
		{&out.DevDockerfile, local.DevDockerfile},
		{&out.WorkspaceRoot, local.WorkspaceRoot},
	} {
		if f.src != "" {
			*f.dst = f.src
		}
	}
	return out
}

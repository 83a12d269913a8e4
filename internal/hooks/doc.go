// Package hooks locates and runs lifecycle hooks.
//
// A hook is an optional executable with a fixed name that lives in a
// template, instance or live configuration directory:
//
//	pre-initialize   post-initialize
//	pre-activate     post-activate
//	pre-deactivate   post-deactivate
//
// Each hook may have a sibling override env file named after it
// (e.g. pre-activate.env).
//
// # Environment
//
// [Env] assembles the variables for one slot: the template defaults, with
// the slot's override file binding tighter. The defaults are also passed
// separately as the base layer, so the child process environment is
//
//	process env < defaults < defaults + override file
//
// # Required Variables
//
// Before a text hook runs, it is scanned for markers of the form
//
//	${VAR?"prompt text"}
//
// For every distinct VAR not already set (or every one when re-entry is
// forced) the user is asked through a [prompt.Prompter]. Answers are added
// to the hook environment and, with PersistAnswers, saved to the override
// env file so the same question is not asked again.
//
// # Execution
//
// Hooks are executed directly (they need an executable bit and a shebang)
// with the caller's working directory, not the hook's own. Output lines are
// streamed to the context logger while the hook runs. Any failure is
// returned as *HookExecutionError and aborts the lifecycle transition.
package hooks

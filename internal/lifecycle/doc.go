// Package lifecycle moves devcontainer configurations between their states.
//
// A project context holds a configuration folder (.devcontainer) with zero
// or more saved instances, one per subdirectory, and at most one live
// instance materialized at the top level of the folder:
//
//	proj/
//	  Dockerfile
//	  .devcontainer/
//	    default/              saved instance (Init)
//	      devcontainer.json
//	      docker-compose.yml
//	      .env
//	      post-activate
//	    devcontainer.json     live instance (Activate)
//	    docker-compose.yml
//	    .env
//
// # Transitions
//
//   - Init copies a template into a new saved instance, resolving the
//     identity variables (DEVCONTAINER_*) and leaving every other
//     placeholder in place.
//   - Activate copies a saved instance to the live location, resolving the
//     instance variables and the host identity (HOST_USER_*). Files the
//     user edited since the last activation are kept unless changes are
//     discarded.
//   - Deactivate removes the live files. Saved instances are not touched.
//
// Each transition runs its pre- and post- hooks (see package hooks); a
// failing hook aborts the transition. Transitions that modify the
// configuration folder hold an advisory file lock for the project.
//
// Errors are typed: *TemplateNotFoundError, *InstanceNotFoundError,
// *ActiveConflictError, *MissingHostIdentityError and
// *hooks.HookExecutionError. Single file copy failures do not fail a
// transition; they are logged and reported in the result.
package lifecycle

// Package doctor diagnoses the environment devcontainer depends on and
// repairs what can be repaired safely.
//
// Checks are grouped into three categories:
//
//   - [CategoryTools]: the docker and compose executables and the Docker
//     engine.
//
//   - [CategoryConfig]: the config file and the templates directory.
//
//   - [CategoryProject]: saved devcontainers, the live configuration and
//     its compose project.
//
// Each [Issue] includes a description and, when --fix can repair it, a fix
// action. Usage:
//
//	n, err := doctor.Run(ctx, env, false) // check only
//	n, err := doctor.Run(ctx, env, true)  // check and fix
package doctor

// Package docker queries the Docker Engine API for the state of the
// devcontainer service.
//
// Containers are matched by the labels docker compose puts on every
// container it creates, so no compose process is needed to answer
// "is it running".
package docker

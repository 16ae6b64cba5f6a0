//go:build tools
// +build tools

// Package tools pins the development tooling this repo expects. Everything
// here is installed with `go install` rather than tracked as a runtime
// dependency in go.mod.
package tools

// mockgen generates the port mocks under internal/mocks
// (run `go generate ./internal/mocks` after installing):
//
//	go install go.uber.org/mock/mockgen@v0.6.0
//
// Air reloads the server during development:
//
//	go install github.com/air-verse/air@v1.63.0

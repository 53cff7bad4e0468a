package ports

import "context"

// EnvironmentProvider creates isolated environments.
//
//go:generate go run go.uber.org/mock/mockgen -source=environment.go -destination=mocks/mock_environment.go -package=mocks
type EnvironmentProvider interface {
	// Create uses the ambient runtime to create an isolated environment, including
	// its installer, at dir.
	Create(ctx context.Context, runtime, dir string) error
}

//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"
)

// InitializeApplication builds the full application object graph.
func InitializeApplication() (*Application, error) {
	wire.Build(Providers)
	return nil, nil
}

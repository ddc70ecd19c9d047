package logger

import (
	"go.uber.org/zap"
)

// New creates a zap logger for the given environment. Development environments
// get human-readable console output, everything else gets JSON.
func New(appEnv string) (*zap.Logger, error) {
	if appEnv == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// NewNamed creates an environment-appropriate logger tagged with the service name.
func NewNamed(appEnv, service string) (*zap.Logger, error) {
	l, err := New(appEnv)
	if err != nil {
		return nil, err
	}
	return l.With(zap.String("service", service)), nil
}

package logger

import "go.uber.org/zap"

// New builds the process logger. Development gets the human-readable
// console encoder, anything else the production JSON encoder.
func New(environment string) (*zap.Logger, error) {
	if environment == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

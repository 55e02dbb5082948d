package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

const (
	portEnvVar     = "PORT"
	appNameVar     = "APP_NAME"
	envVar         = "ENV"
	logLevelEnvVar = "LOG_LEVEL"

	DevEnv = "DEV"
)

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	IsDev() bool
	GetLogLevel() zerolog.Level
}

type EnvVars struct {
	port     string
	appName  string
	env      string
	logLevel zerolog.Level
}

var _ EnvConfig = EnvVars{}

func loadEnvVars(lookup LookupFunc) (EnvVars, error) {
	e := EnvVars{
		port:    lookup.get(portEnvVar, "3000"),
		appName: lookup.get(appNameVar, "Members"),
		env:     strings.ToUpper(lookup.get(envVar, DevEnv)),
	}

	level, err := zerolog.ParseLevel(strings.ToLower(lookup.get(logLevelEnvVar, "info")))
	if err != nil {
		return EnvVars{}, fmt.Errorf("[config] %s: %w", logLevelEnvVar, err)
	}
	e.logLevel = level
	return e, nil
}

// GetPort returns the listen address, e.g. ":3000"
func (e EnvVars) GetPort() string {
	if strings.HasPrefix(e.port, ":") {
		return e.port
	}
	return ":" + e.port
}

func (e EnvVars) GetAppName() string {
	return e.appName
}

func (e EnvVars) GetEnv() string {
	return e.env
}

func (e EnvVars) IsDev() bool {
	return e.env == DevEnv
}

func (e EnvVars) GetLogLevel() zerolog.Level {
	return e.logLevel
}

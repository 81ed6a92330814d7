package logger

import (
	"os"
	"strings"
)

type Env string

const (
	EnvDev   Env = "dev"
	EnvStage Env = "stage"
	EnvProd  Env = "prod"
)

var envAliases = map[string]Env{
	"dev":            EnvDev,
	"development":    EnvDev,
	"local":          EnvDev,
	"stage":          EnvStage,
	"staging":        EnvStage,
	"preprod":        EnvStage,
	"pre-production": EnvStage,
	"prod":           EnvProd,
	"production":     EnvProd,
}

// DetectEnv reads APP_ENV.
func DetectEnv() Env {
	return ParseEnv(os.Getenv("APP_ENV"))
}

// ParseEnv maps raw onto a known Env; anything unrecognised is dev.
func ParseEnv(raw string) Env {
	if env, ok := envAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return env
	}
	return EnvDev
}

func (e Env) String() string { return string(e) }

// Structured reports whether logs should be machine-readable.
func (e Env) Structured() bool { return e != EnvDev }

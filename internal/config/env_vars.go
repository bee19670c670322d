package config

import (
	"fmt"
	"os"
)

const (
	apiPortEnvVar = "API_PORT"
	webPortEnvVar = "WEB_PORT"
	appNameVar    = "APP_NAME"
	apiBaseURLVar = "API_BASE_URL"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAPIPort() string {
	return listenAddr(GetEnv(apiPortEnvVar, "5000"))
}

func (EnvVars) GetWebPort() string {
	return listenAddr(GetEnv(webPortEnvVar, "8080"))
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "SharingMezzi")
}

// GetAPIBaseURL returns the backend base URL the frontend forwards
// authenticated calls to.
func (EnvVars) GetAPIBaseURL() string {
	return GetEnv(apiBaseURLVar, "http://localhost:5000")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func listenAddr(port string) string {
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

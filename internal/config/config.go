package config

type Config interface {
	EnvConfig
	AuthConfig
	DBConfig
}

type EnvConfig interface {
	GetAPIPort() string
	GetWebPort() string
	GetAppName() string
	GetAPIBaseURL() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
	Auth
	DB
}

func New() Config {
	return mainConfig{}
}

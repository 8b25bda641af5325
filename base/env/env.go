package env

import (
	"os"
)

const defaultAppName = "marketd"

// PodName is the kubernetes pod the process runs in, empty elsewhere
func PodName() string {
	return os.Getenv("PODNAME")
}

// EnvName example: staging
func EnvName() string {
	return os.Getenv("ENV_NAME")
}

// AppName defaults to marketd when APP_NAME is unset
func AppName() string {
	if name, ok := os.LookupEnv("APP_NAME"); ok && name != "" {
		return name
	}
	return defaultAppName
}

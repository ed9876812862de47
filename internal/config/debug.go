package config

import "os"

func IsDebug() bool {
	return os.Getenv("SAORI_DEBUG") == "1"
}

package config

import "os"

func IsDebug() bool {
	return os.Getenv("DUET_DEBUG") == "1"
}

package utils

import (
	"fmt"
	"log"
	"strconv"
)

const defaultPort = 5005

func getPort(raw string) int {
	port, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("⚠️ Invalid port '%s', defaulting to %d. Error: %v", raw, defaultPort, err)
		return defaultPort
	}

	if port < 10 || port > 65535 {
		log.Printf("⚠️ Port %d out of range (10-65535), defaulting to %d", port, defaultPort)
		return defaultPort
	}

	return port
}

func GetListenAddress(port, appEnv string) string {
	p := getPort(port)

	if appEnv == "production" {
		return fmt.Sprintf("0.0.0.0:%d", p)
	}
	return fmt.Sprintf(":%d", p)
}

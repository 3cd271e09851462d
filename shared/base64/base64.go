package base64

import (
	"encoding/base64"
	"fmt"
	"strings"
)

func GetContentType(file string) string {
	start := len("data:")
	end := strings.Index(file, ";base64,")

	if end == -1 || end < start {
		return ""
	}

	return file[start:end]
}

// Decode returns the raw bytes of a base64 payload, accepting both plain
// base64 and data URLs ("data:<type>;base64,<payload>").
func Decode(file string) ([]byte, error) {
	payload := file
	if idx := strings.Index(file, ";base64,"); idx != -1 {
		payload = file[idx+len(";base64,"):]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 payload: %w", err)
	}

	return data, nil
}

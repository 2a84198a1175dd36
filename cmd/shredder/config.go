package main

import (
	"encoding/json"
	"os"
)

// Config holds one field per CLI flag; JSON tags let it double as the
// shape for an optional override file.
type Config struct {
	Output        string `json:"output"`
	SkipBytes     int64  `json:"skip_bytes"`
	BlockSize     int64  `json:"blocksize"`
	BufferSize    int    `json:"buffersize"`
	DisableRDRand bool   `json:"disable_rdrand"`
}

func parseJSONConfig(config *Config, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return json.NewDecoder(file).Decode(config)
}

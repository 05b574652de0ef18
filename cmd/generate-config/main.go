package main

import (
	"os"

	"gopkg.in/yaml.v2"
	"ratscrew/internal/config"
)

// generate-config writes the default configuration as YAML, suitable for config.yaml
func main() {
	if err := yaml.NewEncoder(os.Stdout).Encode(config.DefaultConfig()); err != nil {
		panic(err)
	}
}

package cli

import (
	"bytes"
	_ "embed"
)

//go:embed default_config.yaml
var embeddedConfigurationDocument []byte

// EmbeddedDefaultConfiguration returns a copy of the built-in configuration document and its format.
func EmbeddedDefaultConfiguration() ([]byte, string) {
	return bytes.Clone(embeddedConfigurationDocument), configurationTypeConstant
}

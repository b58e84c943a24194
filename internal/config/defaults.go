package config

import (
	"github.com/knadh/koanf/providers/confmap"
)

func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"log": map[string]interface{}{
			"level": "info",
			"file":  "", // stderr; stdout carries the MCP framing
		},
		"pagination": map[string]interface{}{
			"default_limit": 20,
		},
		"access": map[string]interface{}{
			"request_on_start": true,
		},
	}
}

func NewDefaultProvider() *confmap.Confmap {
	return confmap.Provider(DefaultConfig(), ".")
}

func GetDefaultConfigPath() string {
	return "~/.mcp-reminders/config.yaml"
}

package config

// Config is the root configuration structure
type Config struct {
	Socket        string `yaml:"socket,omitempty" json:"socket,omitempty"`               // IPC endpoint override
	Timeout       string `yaml:"timeout,omitempty" json:"timeout,omitempty"`             // Duration string, "0" disables
	Reverse       bool   `yaml:"reverse,omitempty" json:"reverse,omitempty"`             // Default for --reverse
	MaxPayload    string `yaml:"maxPayload,omitempty" json:"maxPayload,omitempty"`       // Size string, e.g. "64MiB"
	ValidateMagic *bool  `yaml:"validateMagic,omitempty" json:"validateMagic,omitempty"` // Defaults to true
}

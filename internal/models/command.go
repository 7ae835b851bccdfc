package models

import (
	"encoding/json"
	"fmt"
)

// CommandResult is one element of a RUN_COMMAND reply, one per subcommand
type CommandResult struct {
	Success    bool   `json:"success"`
	ParseError bool   `json:"parse_error,omitempty"`
	Error      string `json:"error,omitempty"`
}

// ParseCommandResults decodes a RUN_COMMAND reply
func ParseCommandResults(payload []byte) ([]CommandResult, error) {
	var results []CommandResult
	if err := json.Unmarshal(payload, &results); err != nil {
		return nil, fmt.Errorf("failed to parse command results: %w", err)
	}
	return results, nil
}

// VersionInfo is the GET_VERSION reply
type VersionInfo struct {
	Major                int    `json:"major"`
	Minor                int    `json:"minor"`
	Patch                int    `json:"patch"`
	HumanReadable        string `json:"human_readable"`
	LoadedConfigFileName string `json:"loaded_config_file_name"`
}

// ParseVersion decodes a GET_VERSION reply
func ParseVersion(payload []byte) (*VersionInfo, error) {
	var v VersionInfo
	if err := json.Unmarshal(payload, &v); err != nil {
		return nil, fmt.Errorf("failed to parse version: %w", err)
	}
	return &v, nil
}

// String returns the human readable version, or major.minor.patch
func (v *VersionInfo) String() string {
	if v.HumanReadable != "" {
		return v.HumanReadable
	}
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

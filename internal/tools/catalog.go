package tools

import (
	"time"

	"scopetree/internal/core/domain"
	"scopetree/internal/platform/logx"
	"scopetree/internal/platform/registry"
)

// Catalog returns the builtin tool descriptor table. Runtimes differ wildly
// between tools (subfinder finishes in seconds, a passive amass enum can take
// minutes), so timeouts are per tool, never global.
func Catalog() []domain.ToolDescriptor {
	return []domain.ToolDescriptor{
		{
			Name:    "subfinder",
			Command: "subfinder",
			Args: func(target string) []string {
				return []string{"-d", target, "-all", "-silent"}
			},
			Timeout: 180 * time.Second,
			Enabled: true,
		},
		{
			Name:    "amass",
			Command: "amass",
			Args: func(target string) []string {
				return []string{"enum", "-passive", "-d", target, "-silent", "-nocolor"}
			},
			Timeout: 300 * time.Second,
			Enabled: true,
		},
		{
			Name:    "assetfinder",
			Command: "assetfinder",
			Args: func(target string) []string {
				return []string{"--subs-only", target}
			},
			Timeout: 120 * time.Second,
			Enabled: true,
		},
		{
			Name:    "findomain",
			Command: "findomain",
			Args: func(target string) []string {
				return []string{"-t", target, "-q"}
			},
			Timeout: 120 * time.Second,
			Enabled: true,
		},
	}
}

// Auto-registration of the builtin catalog on package import.
func init() {
	for _, desc := range Catalog() {
		if err := registry.Global().Register(desc, NewCLITool); err != nil {
			// Log error but don't panic - allow application to start
			logx.New().Warn("failed to register tool", "tool", desc.Name, "error", err.Error())
		}
	}
}

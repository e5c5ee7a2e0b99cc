package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .qooa.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to the QOOA control tower! Let's configure your dashboard.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Listen port.
	portPrompt := promptui.Prompt{
		Label:   "Port to listen on",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port selection: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// 2. Data directory.
	dataPrompt := promptui.Prompt{
		Label:   "Data directory",
		Default: cfg.DataDir,
	}
	if cfg.DataDir, err = dataPrompt.Run(); err != nil {
		return nil, fmt.Errorf("data directory: %w", err)
	}

	// 3. Backend base URL.
	backendPrompt := promptui.Prompt{
		Label:   "Vendor backend URL",
		Default: cfg.BackendURL,
		Validate: func(s string) error {
			return validBaseURL(strings.TrimSpace(s))
		},
	}
	if cfg.BackendURL, err = backendPrompt.Run(); err != nil {
		return nil, fmt.Errorf("backend URL: %w", err)
	}
	cfg.BackendURL = strings.TrimSpace(cfg.BackendURL)

	// 4. Remote fragment source, optional.
	assetPrompt := promptui.Select{
		Label: "View fragment source",
		Items: []string{
			"local builders only",
			"remote fragments with local fallback",
		},
	}
	assetIdx, _, err := assetPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("fragment source: %w", err)
	}
	if assetIdx == 1 {
		urlPrompt := promptui.Prompt{
			Label: "Fragment base URL",
			Validate: func(s string) error {
				return validBaseURL(strings.TrimSpace(s))
			},
		}
		if cfg.AssetBaseURL, err = urlPrompt.Run(); err != nil {
			return nil, fmt.Errorf("fragment base URL: %w", err)
		}
		cfg.AssetBaseURL = strings.TrimSpace(cfg.AssetBaseURL)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(DefaultPath); err != nil {
		return nil, err
	}

	fmt.Println()
	fmt.Printf("Configuration written to %s\n", DefaultPath)
	return cfg, nil
}

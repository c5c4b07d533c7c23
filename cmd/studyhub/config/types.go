// Copyright (C) 2025 StudyHub (support@studyhub.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

import (
	"github.com/go-playground/validator/v10"
)

type StudyHubConfig struct {
	// API: the StudyHub backend
	API APIConfig `yaml:"api"`

	// Identity: the Firebase Auth REST endpoints
	Identity IdentityConfig `yaml:"identity"`

	// Storage: media bucket for note attachments
	Storage StorageConfig `yaml:"storage"`

	// Logging: level and optional file destination
	Logging LoggingConfig `yaml:"logging"`

	// UI: list rendering defaults
	UI UIConfig `yaml:"ui"`
}

type APIConfig struct {
	BaseURL string `yaml:"base_url" validate:"required,url"` // e.g. https://api.studyhub.app
}

type IdentityConfig struct {
	APIKey string `yaml:"api_key" validate:"required"`
	// BaseURL and TokenURL override the Google endpoints, mainly for the
	// auth emulator. Empty means production.
	BaseURL  string `yaml:"base_url,omitempty" validate:"omitempty,url"`
	TokenURL string `yaml:"token_url,omitempty" validate:"omitempty,url"`
}

type StorageConfig struct {
	Bucket          string `yaml:"bucket"`
	CredentialsFile string `yaml:"credentials_file,omitempty"`
}

type LoggingConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"` // e.g. info
	Dir   string `yaml:"dir,omitempty"`                                // e.g. ~/.studyhub/logs
}

type UIConfig struct {
	PerPage int `yaml:"per_page" validate:"oneof=6 9 12 24"`
}

// Validate checks the loaded config against its struct tags.
func (c *StudyHubConfig) Validate() error {
	return validator.New(validator.WithRequiredStructEnabled()).Struct(c)
}

func DefaultConfig() StudyHubConfig {
	return StudyHubConfig{
		API: APIConfig{
			BaseURL: "http://localhost:8000",
		},
		Identity: IdentityConfig{
			APIKey: "set-me",
		},
		Storage: StorageConfig{
			Bucket: "",
		},
		Logging: LoggingConfig{
			Level: "info",
			Dir:   "~/.studyhub/logs",
		},
		UI: UIConfig{
			PerPage: 9,
		},
	}
}

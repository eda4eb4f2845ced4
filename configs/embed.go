// Package configs provides the embedded configuration template for
// paylaunch. The template is embedded at build time so `paylaunch init`
// can scaffold a project config from any distribution of the binary.
//
// Configuration hierarchy (see internal/config/config.go Load()):
//  1. Hardcoded defaults (internal/config NewConfig())
//  2. User config (~/.config/paylaunch/config.yaml)
//  3. Project config (.paylaunch.yaml)
//  4. Environment variables (PAYLAUNCH_*)
package configs

import _ "embed"

// ProjectConfigTemplate is the commented template written by
// `paylaunch init` as .paylaunch.yaml next to the launcher.
//
//go:embed project-config.example.yaml
var ProjectConfigTemplate string

// Package config provides configuration management for rpslpolicy.
//
// Configuration is read from a YAML file, completed with defaults and
// validated:
//
//	cfg, err := config.LoadConfigWithEnvOverrides("rpslpolicy.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention RPSLPOLICY_SECTION_FIELD:
//
//   - RPSLPOLICY_STORE_PATH overrides store.path
//   - RPSLPOLICY_RPSL_ENCODING overrides rpsl.encoding
//   - RPSLPOLICY_LOGGING_LEVEL overrides logging.level
//
// List fields take comma-separated values. Environment variables always
// take precedence over file-based configuration.
//
// # Configuration Precedence
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// Unknown YAML keys are rejected.
package config

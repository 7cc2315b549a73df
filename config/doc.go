// Package config loads the sitehealth YAML configuration.
//
// Load starts from Default, overlays the file, fills zero values, resolves
// ${VAR} and secretref: references in credential-bearing fields, and
// validates the result.
package config

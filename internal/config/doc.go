// Package config handles cfkit configuration.
//
// Settings come from an optional YAML file (with ${VAR} interpolation) and
// are then overridden by environment variables, so a plain .env file is
// enough for most setups:
//
//	KEY, SECRET           Codeforces API key and secret
//	CF_USERNAME           default handle
//	REMINDER_TIMES        lead times in minutes, e.g. "1440,60,15"
//	CONTEST_FILTER        "div2,div3" or "all"
//	INCLUDE_GYM           "true" to include gym contests
package config

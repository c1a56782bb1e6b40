// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

// Package config provides layered application configuration.
//
// Configuration is loaded with Koanf v2 from three sources in order of
// increasing priority: built-in defaults, an optional YAML file, and
// environment variables. The result is validated once at startup and is
// immutable afterwards, so it is safe for concurrent reads.
package config

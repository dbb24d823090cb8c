// Package config loads quill's runtime configuration.
//
// # Resolution Order
//
//  1. Built-in defaults (see Default)
//  2. TOML file at the given path, or ~/.config/quill/config.toml
//  3. Dotenv files passed to Load (the CLI passes ./.env)
//  4. Process environment (QUILL_* variables)
//
// Later sources override earlier ones. A missing config or dotenv file is not
// an error; a malformed one is.
//
// # Configuration File
//
//	seed_file   = "~/notes/seed.json"   # archive loaded at startup
//	export_file = "~/notes/export.json" # target of the export key
//	log_file    = "-"                   # "-" disables logging
//	log_level   = "debug"
//	view_limit  = 8                     # favorites/latest view size
//
// All paths support ~ expansion and are returned absolute.
package config

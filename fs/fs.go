// Package appfs exposes files embedded at build time.
package appfs

import "embed"

//go:embed migrations
var FS embed.FS

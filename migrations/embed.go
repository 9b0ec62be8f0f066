// Package migrations embeds the goose SQL migrations for the projects and
// blog_posts tables. The API server applies them at startup when
// AUTO_MIGRATE=true, and the repo integration tests apply them in TestMain.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
//
//go:embed *.sql
var FS embed.FS

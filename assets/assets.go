package assets

import "embed"

const ServiceName = "app-portal"

// WebAdmin holds the login and admin pages served on /login and /admin.
//
//go:embed webadmin
var WebAdmin embed.FS

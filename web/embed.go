// Package web embeds the page templates and static assets.
package web

import "embed"

//go:embed templates/*.html
var TemplatesFS embed.FS

//go:embed static/css/*.css
var StaticFS embed.FS

//go:embed robots.txt
var RobotsTxt []byte

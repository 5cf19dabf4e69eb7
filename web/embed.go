// Package web embeds the default page templates and static assets used when
// the template directory does not provide its own.
package web

import "embed"

// Default asset names, shared by the template directory and the embedded set.
const (
	IndexTemplate   = "index.html"
	ArticleTemplate = "article.html"
	Stylesheet      = "style.css"
	AppScript       = "app.js"
)

//go:embed index.html article.html style.css app.js
var FS embed.FS

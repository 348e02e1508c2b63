// Package dispatch serves profiles over HTTP in the format each client
// asks for.
//
// Every profile lives under /<username>. An extension picks the format
// (.txt, .svg, .png, .json). Without one, command-line clients get the man
// page and browsers are redirected to the web app. Command-line clients
// asking for text get ANSI colors unless they pass ?plain.
package dispatch

import (
	"net/url"
	"strings"

	"github.com/matzehuels/mandev/pkg/pipeline"
)

// cliSignatures are User-Agent fragments of command-line HTTP clients.
var cliSignatures = []string{
	"curl/",
	"Wget/",
	"HTTPie/",
	"libfetch/",
	"Go-http-client/",
	"python-requests/",
	"python-httpx/",
	"node-fetch/",
	"undici/",
}

// IsCLI reports whether userAgent belongs to a command-line HTTP client.
func IsCLI(userAgent string) bool {
	for _, sig := range cliSignatures {
		if strings.Contains(userAgent, sig) {
			return true
		}
	}
	return false
}

// Negotiate picks the response format. ext is the request extension
// without the dot, empty when absent. ok is false for unknown extensions.
func Negotiate(ext, userAgent string, query url.Values) (f pipeline.Format, ok bool) {
	switch strings.ToLower(ext) {
	case "svg":
		return pipeline.FormatSVG, true
	case "png":
		return pipeline.FormatPNG, true
	case "json":
		return pipeline.FormatJSON, true
	case "txt":
		return textFormat(userAgent, query), true
	case "":
		if IsCLI(userAgent) {
			return textFormat(userAgent, query), true
		}
		return pipeline.FormatHTML, true
	}
	return "", false
}

func textFormat(userAgent string, query url.Values) pipeline.Format {
	if IsCLI(userAgent) && !wantsPlain(query) {
		return pipeline.FormatANSI
	}
	return pipeline.FormatText
}

// wantsPlain is true for ?plain, ?plain=1 and ?plain=true.
func wantsPlain(query url.Values) bool {
	if !query.Has("plain") {
		return false
	}
	switch strings.ToLower(query.Get("plain")) {
	case "0", "false", "no", "off":
		return false
	}
	return true
}

// splitName separates "<username>.<ext>". Usernames cannot contain dots.
func splitName(name string) (username, ext string) {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[:i], name[i+1:]
	}
	return name, ""
}

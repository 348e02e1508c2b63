// Package pkg provides the libraries behind man.dev: one developer profile
// rendered as a Unix man page for the terminal and as an SVG or PNG card for
// sharing.
//
// # Overview
//
// A profile is a single document (name, skills, projects, experience, links
// and optional stats from external services). Every output format walks the
// same section order, so a profile reads the same in curl and on a README.
//
//	profile.Document
//	       ↓
//	[render/layout]  (which sections, in which order)
//	       ↓
//	[render/manpage] → txt, ansi
//	[render/card]    → svg → [render] rasterizer → png
//
// # Quick Start
//
// Render a local profile file:
//
//	doc, _ := profile.LoadFile(".mandev.toml")
//	fmt.Print(manpage.RenderANSI(doc, manpage.WithYear(2026)))
//	svg := card.RenderSVG(doc)
//
// Serve profiles from the profile API:
//
//	src, _ := store.NewHTTPSource(store.HTTPOptions{BaseURL: "https://api.man.dev"})
//	runner := pipeline.NewRunner(src, cache.NewMemoryCache(4096), nil, logger)
//	http.ListenAndServe(":8080", dispatch.NewHandler(runner, dispatch.Options{}))
//
// # Main Packages
//
// ## Rendering
//
// [profile] - The profile document, file loading (TOML, YAML, JSON),
// validation and the doctor report.
//
// [render/theme] - Card color schemes with a fixed fallback.
//
// [render/skill] - Skill level to bar fill ratio.
//
// [render/layout] - Section order shared by all formats.
//
// [render/manpage] - Man page as a token stream painted plain or with ANSI
// escapes.
//
// [render/card] - The 600x300 SVG card and its PNG form. [render] holds the
// rasterizers and [fonts] the embedded Go Mono faces.
//
// ## Serving
//
// [pipeline] - Fetch, render and cache one profile in one format. Used by the
// server and the CLI.
//
// [dispatch] - HTTP routing, content negotiation and error bodies.
//
// [store] - Profile sources: the profile API over HTTP, or a local directory.
//
// ## Infrastructure
//
// [cache] - Cache interface with memory, file, Redis and null backends.
//
// [httputil] - HTTP client defaults and retry with backoff.
//
// [errors] - Coded errors and input validation.
//
// [observability] - Hooks for render, cache and upstream HTTP events.
//
// [profile]: https://pkg.go.dev/github.com/matzehuels/mandev/pkg/profile
// [render]: https://pkg.go.dev/github.com/matzehuels/mandev/pkg/render
// [render/theme]: https://pkg.go.dev/github.com/matzehuels/mandev/pkg/render/theme
// [render/skill]: https://pkg.go.dev/github.com/matzehuels/mandev/pkg/render/skill
// [render/layout]: https://pkg.go.dev/github.com/matzehuels/mandev/pkg/render/layout
// [render/manpage]: https://pkg.go.dev/github.com/matzehuels/mandev/pkg/render/manpage
// [render/card]: https://pkg.go.dev/github.com/matzehuels/mandev/pkg/render/card
// [fonts]: https://pkg.go.dev/github.com/matzehuels/mandev/pkg/fonts
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/mandev/pkg/pipeline
// [dispatch]: https://pkg.go.dev/github.com/matzehuels/mandev/pkg/dispatch
// [store]: https://pkg.go.dev/github.com/matzehuels/mandev/pkg/store
// [cache]: https://pkg.go.dev/github.com/matzehuels/mandev/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/matzehuels/mandev/pkg/httputil
// [errors]: https://pkg.go.dev/github.com/matzehuels/mandev/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/mandev/pkg/observability
package pkg

// Package manpage renders a profile as a man(7)-style page.
//
// [Build] lays the page out once as lines of semantically tagged [Token]s.
// A [Painter] then turns tokens into bytes: [Plain] emits the text as-is
// and [ANSI] wraps each token in SGR escapes according to its [Role]. The
// two outputs therefore differ only by escape sequences:
//
//	page := manpage.Build(doc, manpage.WithYear(2026))
//	txt := page.Paint(manpage.Plain{})
//	tty := page.Paint(manpage.ANSI{})
//
// Section order comes from [layout.Sections]; body lines are indented 7
// spaces and detail lines 9.
package manpage

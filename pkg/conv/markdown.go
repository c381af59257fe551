// Package conv converts between the text formats the transports exchange.
package conv

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

var mdExtensions = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock

// telegramPolicy keeps only the tags Bot API accepts.
// https://core.telegram.org/bots/api#html-style
var telegramPolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "strong", "i", "em", "u", "ins", "s", "strike", "del", "code", "pre", "blockquote")
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("class").OnElements("code")
	return p
}()

// MarkdownToTelegramHTML renders markdown to HTML and strips every tag
// Telegram would reject, leaving the text content in place.
func MarkdownToTelegramHTML(md []byte) string {
	p := parser.NewWithExtensions(mdExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	raw := markdown.Render(p.Parse(md), renderer)

	return string(telegramPolicy.SanitizeBytes(raw))
}

package webfetch

import (
	"regexp"
	"strings"
)

// ExtractText is a deterministic textual transform from HTML to plain text,
// deliberately not a parser: script/style/noscript blocks and comments are
// removed, block boundaries become newlines, remaining tags are stripped and
// a small fixed set of entities is decoded. Malformed markup may leak stray
// characters; that is an accepted trade-off.
var (
	reScript   = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	reStyle    = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	reNoscript = regexp.MustCompile(`(?is)<noscript[^>]*>.*?</noscript>`)
	reComment  = regexp.MustCompile(`(?s)<!--.*?-->`)
	reBlockEnd = regexp.MustCompile(`(?i)</(p|div|section|article|li|ul|ol|h[1-6]|table|tr|blockquote|header|footer|figure|figcaption)>`)
	reBreak    = regexp.MustCompile(`(?i)<(br|hr)\s*/?>`)
	reTag      = regexp.MustCompile(`<[^>]*>`)
	reHSpace   = regexp.MustCompile(`[ \t\x{00a0}]+`)
	reBlank    = regexp.MustCompile(`\n[ \t]*\n(?:[ \t]*\n)+`)
)

var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&euro;", "€",
)

// ExtractText converts HTML into best-effort plain text.
func ExtractText(html string) string {
	s := reScript.ReplaceAllString(html, "")
	s = reStyle.ReplaceAllString(s, "")
	s = reNoscript.ReplaceAllString(s, "")
	s = reComment.ReplaceAllString(s, "")

	s = reBlockEnd.ReplaceAllString(s, "\n")
	s = reBreak.ReplaceAllString(s, "\n")
	s = reTag.ReplaceAllString(s, "")

	s = entityReplacer.Replace(s)

	s = reHSpace.ReplaceAllString(s, " ")
	s = reBlank.ReplaceAllString(s, "\n\n")

	// Strip per-line leading/trailing space left by the tag removal.
	lines := strings.Split(s, "\n")
	for i, ln := range lines {
		lines[i] = strings.TrimSpace(ln)
	}
	s = strings.Join(lines, "\n")
	s = reBlank.ReplaceAllString(s, "\n\n")

	return strings.TrimSpace(s)
}

package helpers

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

var (
	slugInvalid   = regexp.MustCompile(`[^a-z0-9-]+`)
	slugHyphenRun = regexp.MustCompile(`-{2,}`)
)

// Slugify transliterates s to ASCII and reduces it to [a-z0-9-].
// "Путешествия по миру" becomes "puteshestviia-po-miru".
func Slugify(s string) string {
	out := strings.ToLower(unidecode.Unidecode(s))
	out = strings.Join(strings.Fields(out), "-")
	out = slugInvalid.ReplaceAllString(out, "")
	out = slugHyphenRun.ReplaceAllString(out, "-")
	out = strings.Trim(out, "-")
	if len(out) > 64 {
		out = strings.TrimRight(out[:64], "-")
	}
	return out
}

package resolver

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/StinkyLord/lockfile-loader/internal/model"
)

const (
	maxSiglaLen    = 50
	siglaPrefixLen = 14
	siglaStampLen  = 5
)

var reNonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)

// Sigla derives the short display code of a new technology. Maven
// dependencies use their artifactId; everything else uses the first 14
// alphanumerics of the name, upper-cased and zero-padded, plus the last five
// digits of the millisecond timestamp:
//
//	"left-pad" at ...12345 ms -> "LEFTPAD0000000-12345"
//
// The suffix only makes collisions unlikely; the catalog id is the identity.
func Sigla(dep *model.Dependency, now time.Time) string {
	if dep.ArtifactID != "" {
		return truncateRunes(dep.ArtifactID, maxSiglaLen)
	}

	clean := strings.ToUpper(reNonAlnum.ReplaceAllString(dep.Name, ""))
	if len(clean) > siglaPrefixLen {
		clean = clean[:siglaPrefixLen]
	}
	clean += strings.Repeat("0", siglaPrefixLen-len(clean))

	stamp := strconv.FormatInt(now.UnixMilli(), 10)
	if len(stamp) > siglaStampLen {
		stamp = stamp[len(stamp)-siglaStampLen:]
	}

	return truncateRunes(clean+"-"+stamp, maxSiglaLen)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

package strategies

import "strings"

// lines splits file contents on "\n" and drops a trailing "\r" from each
// line. There is no line length limit.
func lines(contents []byte) []string {
	out := strings.Split(string(contents), "\n")
	for i, l := range out {
		out[i] = strings.TrimSuffix(l, "\r")
	}
	return out
}

package quality

import "regexp"

var wordExpr = regexp.MustCompile(`[\p{L}\p{N}']+`)

// Words splits text into word tokens: runs of letters, digits, and
// apostrophes. Punctuation and whitespace are dropped.
func Words(text string) []string {
	return wordExpr.FindAllString(text, -1)
}

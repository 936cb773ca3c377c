package content

import "strings"

var punctStripper = strings.NewReplacer(",", "", ".", "", ":", "", ";", "")

// Normalize turns line breaks into spaces and, when stripPunct is set, removes
// commas, periods, colons and semicolons.
func Normalize(body string, stripPunct bool) string {
	body = strings.ReplaceAll(body, "\r\n", " ")
	body = strings.ReplaceAll(body, "\n", " ")
	body = strings.ReplaceAll(body, "\r", " ")
	if stripPunct {
		body = punctStripper.Replace(body)
	}
	return body
}

// Words splits a body on whitespace runs, discarding empty tokens.
func Words(body string) []string {
	return strings.Fields(body)
}

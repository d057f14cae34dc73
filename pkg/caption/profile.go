package caption

import "strings"

var profilePrefix = "Camera "

// ParseCameraProfile extracts the look name from a "Camera <name>" profile tag.
//
// Fujifilm bodies report film simulations as e.g. "Camera CLASSIC CHROME".
// Anything else is not recognized and is reported as absent.
func ParseCameraProfile(raw string) (string, bool) {
	name, ok := strings.CutPrefix(raw, profilePrefix)
	if !ok || name == "" || strings.ContainsAny(name, "\n\r") {
		return "", false
	}
	return name, true
}

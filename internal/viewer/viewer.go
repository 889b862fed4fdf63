// Package viewer performs the one substitution the engine's output
// contract requires of the external web-viewer template: replacing
// the literal token "$MAP_DATA$" with the final map-index document.
// The template itself, and everything else about the viewer, stays
// external — this package only knows the token.
package viewer

import (
	"bytes"
	"fmt"
)

const mapDataToken = "$MAP_DATA$"

// Inject replaces the first occurrence of the map-data token in
// template with mapIndexJSON. Returns an error if the token is not
// present, since a template without it can never display a finished
// run's output.
func Inject(template []byte, mapIndexJSON []byte) ([]byte, error) {
	if !bytes.Contains(template, []byte(mapDataToken)) {
		return nil, fmt.Errorf("viewer: template has no %s token", mapDataToken)
	}
	return bytes.Replace(template, []byte(mapDataToken), mapIndexJSON, 1), nil
}

package wiki

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var (
	qualifierPattern   = regexp.MustCompile(`\(([^)]*)\)`)
	orientationPattern = regexp.MustCompile(`^[EWNSUD0-9_]*[EWNSUD][EWNSUD0-9_]*$`)
	layersPattern      = regexp.MustCompile(`(?i)^(\d+[_ ]?)?layers?([_ ]?\d+)?$`)
	versionPattern     = regexp.MustCompile(`[_ ](?:JE|BE)(\d+)`)
)

// Marker is the metadata encoded in a wiki image filename.
type Marker struct {
	// Orientation holds the direction letters of an orientation qualifier
	// such as "(S)" or "(EW)", or "" when there is none.
	Orientation string

	// Layers is set when the filename carries a layers qualifier.
	Layers bool

	// Version is the edition version number (e.g. 5 for "_JE5"); it is only
	// meaningful when Versioned is set.
	Version   int
	Versioned bool
}

// ParseMarker extracts the marker from filename. It returns false when the
// filename carries a parenthesised qualifier that is neither an orientation
// code nor a layers qualifier; such names are not trustworthy.
func ParseMarker(filename string) (Marker, bool) {
	var m Marker

	for _, match := range qualifierPattern.FindAllStringSubmatch(filename, -1) {
		q := match[1]
		switch {
		case orientationPattern.MatchString(q):
			if m.Orientation == "" {
				m.Orientation = directionLetters(q)
			}
		case layersPattern.MatchString(q):
			m.Layers = true
		default:
			return Marker{}, false
		}
	}

	if v := versionPattern.FindStringSubmatch(filename); v != nil {
		if n, err := strconv.Atoi(v[1]); err == nil {
			m.Version = n
			m.Versioned = true
		}
	}

	return m, true
}

// directionLetters keeps only the direction letters of an orientation code.
func directionLetters(q string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune("EWNSUD", r) {
			return r
		}
		return -1
	}, q)
}

// Faces reports whether the orientation holds exactly the letters of dir, in
// any order, so "(WE)" faces "EW".
func (m Marker) Faces(dir string) bool {
	return sortedLetters(m.Orientation) == sortedLetters(dir)
}

func sortedLetters(s string) string {
	r := []rune(s)
	slices.Sort(r)
	return string(r)
}

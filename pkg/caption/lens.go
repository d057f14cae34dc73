package caption

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// FSymbol is the stylized aperture marker used in captions.
const FSymbol = "𝑓"

var apertureMarkers = strings.NewReplacer("f/", FSymbol, "F/", FSymbol)

// PrettifyAperture rewrites "f/" and "F/" aperture markers to FSymbol.
func PrettifyAperture(lens string) string {
	return apertureMarkers.Replace(lens)
}

// SummarizeLensFocalLength returns the lens, followed by the focal length unless the lens name already states it.
//
// Zoom lenses ("16-80mm") always show the focal length. Prime lenses
// ("23mm") omit it when it is within 1mm of the stated length.
func SummarizeLensFocalLength(lens string, focalLength float64) []string {
	combined := []string{lens, fmt.Sprintf("%dmm", int(math.Round(focalLength)))}

	if hasZoomRange(lens) {
		return combined
	}

	prime, ok := primeFocalLength(lens)
	if !ok {
		return combined
	}

	if math.Abs(prime-focalLength) < 1.0 {
		return []string{lens}
	}
	return combined
}

// LensSpecMatchesFNum reports whether the last aperture in the lens name is within 0.1 of fNum.
//
// Zoom names may carry an aperture range ("𝑓2.8-4"); the last value is the one at the tele end.
func LensSpecMatchesFNum(lens string, fNum float64) bool {
	v, ok := lastAperture(lens)
	if !ok {
		return false
	}
	return math.Abs(v-fNum) < 0.1
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// scanNumber consumes digits at s[i:], plus a fractional part if one follows.
func scanNumber(s string, i int) (int, bool) {
	j := i
	for j < len(s) && isDigit(s[j]) {
		j++
	}
	if j == i {
		return i, false
	}
	if j+1 < len(s) && s[j] == '.' && isDigit(s[j+1]) {
		j += 2
		for j < len(s) && isDigit(s[j]) {
			j++
		}
	}
	return j, true
}

// hasZoomRange reports whether s contains "<int>-<int>mm".
func hasZoomRange(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != '-' || !isDigit(s[i-1]) {
			continue
		}
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j > i+1 && strings.HasPrefix(s[j:], "mm") {
			return true
		}
	}
	return false
}

// primeFocalLength returns the first "<number>mm" value in s.
func primeFocalLength(s string) (float64, bool) {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			continue
		}
		end, _ := scanNumber(s, i)
		if !strings.HasPrefix(s[end:], "mm") {
			continue
		}
		v, err := strconv.ParseFloat(s[i:end], 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	return 0, false
}

// lastAperture returns the value of the rightmost f-number token in s: f, F or FSymbol, an optional "/", then a number.
func lastAperture(s string) (float64, bool) {
	var (
		last  float64
		found bool
	)

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r != 'f' && r != 'F' && string(r) != FSymbol {
			i += size
			continue
		}

		start := i + size
		if start < len(s) && s[start] == '/' {
			start++
		}
		end, ok := scanNumber(s, start)
		if !ok {
			i += size
			continue
		}

		if v, err := strconv.ParseFloat(s[start:end], 64); err == nil {
			last, found = v, true
		}
		i = end
	}

	return last, found
}

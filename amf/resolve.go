package amf

import (
	"strings"

	"github.com/mrjoshuak/go-amf/ocio"
)

// searchColorSpaces performs a linear scan over the reference config looking
// for acesID as a substring of each color space's Description field -- not
// its Name (spec.md §4.3). This mirrors the source exactly and is sensitive
// to whitespace and case in the reference config's descriptions.
func searchColorSpaces(ref ocio.Config, acesID string) (*ocio.ColorSpace, bool) {
	for i := 0; ; i++ {
		name, ok := ref.ColorSpaceNameByIndex(i)
		if !ok {
			return nil, false
		}
		cs, ok := ref.ColorSpace(name)
		if !ok {
			continue
		}
		if strings.Contains(cs.Description, acesID) {
			return cs, true
		}
	}
}

// searchViewTransforms performs the same substring scan over view
// transforms.
func searchViewTransforms(ref ocio.Config, acesID string) (*ocio.ViewTransform, bool) {
	for i := 0; ; i++ {
		vt, ok := ref.ViewTransformByIndex(i)
		if !ok {
			return nil, false
		}
		if strings.Contains(vt.Description, acesID) {
			return vt, true
		}
	}
}

// searchLookTransforms performs the same substring scan over looks and
// returns an editable copy, since the caller renames it before inserting it
// into the built config.
func searchLookTransforms(ref ocio.Config, acesID string) (*ocio.Look, bool) {
	for i := 0; ; i++ {
		l, ok := ref.LookByIndex(i)
		if !ok {
			return nil, false
		}
		if strings.Contains(l.Description, acesID) {
			cp := *l
			return &cp, true
		}
	}
}

// cameraMapping is the fixed table of log-camera color-space names to their
// linearized counterparts (spec.md §4.3): 11 entries covering ARRI
// LogC3/4, BMDFilm Gen5, CanonLog2/3 CinemaGamut D55, V-Log, Log3G10
// REDWideGamut, and the S-Log3 S-Gamut3 / Venice S-Gamut3 families.
var cameraMapping = map[string]string{
	"ARRI LogC3 (EI800)":               "Linear ARRI Wide Gamut 3",
	"ARRI LogC4":                       "Linear ARRI Wide Gamut 4",
	"Blackmagic Film Wide Gamut Gen5":  "Linear BMD Wide Gamut Gen5",
	"Canon Log2 Cinema Gamut D55":      "Linear Canon Cinema Gamut Daylight",
	"Canon Log3 Cinema Gamut D55":      "Linear Canon Cinema Gamut Daylight",
	"Panasonic V-Log V-Gamut":          "Linear Panasonic V-Gamut",
	"RED Log3G10 REDWideGamutRGB":      "Linear REDWideGamutRGB",
	"Sony SLog3 SGamut3":               "Linear Sony SGamut3",
	"Sony SLog3 SGamut3.Cine":          "Linear Sony SGamut3.Cine",
	"Sony SLog3 Venice SGamut3":        "Linear Sony Venice SGamut3",
	"Sony SLog3 Venice SGamut3.Cine":   "Linear Sony Venice SGamut3.Cine",
}

// linearCompanion returns the linear color-space name paired with a
// log-camera color space, if logName is a recognized camera-log space.
func linearCompanion(logName string) (string, bool) {
	name, ok := cameraMapping[logName]
	return name, ok
}

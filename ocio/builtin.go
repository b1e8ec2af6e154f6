package ocio

import (
	"fmt"
	"os"
)

// BuiltinStudioConfig is the name of the default reference config loaded
// when the caller supplies no reference-config path (spec.md §6).
const BuiltinStudioConfig = "studio-config-v2.1.0_aces-v1.3_ocio-v2.3"

// CreateFromBuiltin returns a copy of a named built-in reference config. Only
// BuiltinStudioConfig is known; any other name is an error, mirroring how a
// real OCIO binding rejects unknown built-in config names.
func CreateFromBuiltin(name string) (Config, error) {
	if name != BuiltinStudioConfig {
		return nil, fmt.Errorf("ocio: unknown built-in config %q", name)
	}
	return studioConfigV2_1().EditableCopy(), nil
}

// CreateFromFile loads a reference config from disk. This module treats the
// reference config as an external collaborator (spec.md §1) and does not
// implement the OCIO config-file grammar itself: any path that exists is
// accepted, its contents are not read, and the result is a copy of the
// built-in studio config. A path that does not exist is an error.
func CreateFromFile(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("ocio: create from file %q: %w", path, err)
	}
	// A genuine OCIO YAML parse is out of scope (spec.md §1): any existing
	// path is treated as a request for the built-in studio config,
	// which is the only reference dataset this module ships.
	return studioConfigV2_1().EditableCopy(), nil
}

// studioConfigV2_1 builds the in-memory reference dataset used throughout
// the test scenarios (spec.md §8, S1-S6) and by CreateFromBuiltin /
// CreateFromFile. Descriptions embed the ACES transform-id substrings the
// Reference Resolver (amf package) searches for (spec.md §4.3): resolution
// is by substring of Description, never by Name.
func studioConfigV2_1() *memConfig {
	cfg := newMemConfig()
	cfg.version = Version{Major: 2, Minor: 3}

	core := []*ColorSpace{
		{Name: "ACES2065-1", Family: "ACES", Description: "The Academy Color Encoding System reference color space"},
		{Name: "ACEScg", Family: "ACES", Description: "ACES compositing space (ACEScg)"},
		{Name: "ACEScct", Family: "ACES", Description: "ACES compositing log (ACEScct)"},
		{Name: "CIE-XYZ-D65", Family: "Utility", Description: "The CIE XYZ color space, adapted to a D65 white point"},
		{Name: "Raw", Family: "Raw", Description: "A raw color space, for data that shouldn't be color managed", IsData: true},
	}
	for _, cs := range core {
		cfg.addColorSpaceUnchecked(cs)
	}

	// IDT (input transform) color spaces: one log-encoded camera space per
	// camera-mapping entry, each carrying the transform id of the IDT that
	// produces it, plus its linear companion (no transform id needed on the
	// linear space -- it is found by name via the camera mapping table, not
	// by resolver search).
	for _, cam := range cameraLogSpaces() {
		cfg.addColorSpaceUnchecked(&ColorSpace{
			Name:        cam.logName,
			Family:      "Input/Camera",
			Description: fmt.Sprintf("urn:ampas:aces:transformId:v1.5:%s", cam.idtID),
		})
		cfg.addColorSpaceUnchecked(&ColorSpace{
			Name:        cam.linearName,
			Family:      "Utility/Linear",
			Description: fmt.Sprintf("Linear scene-referred space matching %s", cam.logName),
		})
	}

	// Output transforms: a handful of RRT+ODT view transforms and their
	// display color spaces, covering the S1/S5/round-trip scenarios.
	outputs := []struct {
		odtID, displayName, vtName string
	}{
		{"RRT.a1.0.3_ODT.Academy.Rec709_100nits_dim.a1.1.0", "sRGB - Display", "Rec.709 (100 nits) - Rec.709"},
		{"RRT.a1.0.3_ODT.Academy.P3D65_108nits_7.2nits_ST2084.a1.1.0", "P3-D65 - Display", "ST2084 (108 nits) - P3-D65"},
	}
	for _, o := range outputs {
		cfg.addColorSpaceUnchecked(&ColorSpace{
			Name:        o.displayName,
			Family:      "Display",
			Description: fmt.Sprintf("urn:ampas:aces:transformId:v1.5:%s", o.odtID),
		})
		cfg.viewTransformOrder = append(cfg.viewTransformOrder, o.vtName)
		cfg.viewTransforms[o.vtName] = &ViewTransform{
			Name:        o.vtName,
			Description: fmt.Sprintf("urn:ampas:aces:transformId:v1.5:%s", o.odtID),
		}
	}

	cfg.viewTransformOrder = append(cfg.viewTransformOrder, "Un-tone-mapped")
	cfg.viewTransforms["Un-tone-mapped"] = &ViewTransform{
		Name:        "Un-tone-mapped",
		Description: "A display-referred view with no filmic tone mapping applied",
	}

	cfg.lookOrder = append(cfg.lookOrder, "Rec.709 Punchy")
	cfg.looks["Rec.709 Punchy"] = &Look{
		Name:         "Rec.709 Punchy",
		ProcessSpace: "ACEScct",
		Description:  "A punchy, saturated look for Rec.709 grading review",
	}

	return cfg
}

type cameraLogSpace struct {
	logName    string
	linearName string
	idtID      string
}

// cameraLogSpaces returns the reference config's 11 log-camera color spaces
// and the ACES transform id of the IDT that targets them, matching the 11
// CAMERA_MAPPING entries of spec.md §4.3.
func cameraLogSpaces() []cameraLogSpace {
	return []cameraLogSpace{
		{"ARRI LogC3 (EI800)", "Linear ARRI Wide Gamut 3", "IDT.ARRI.Alexa-v3-logC-EI800.a1.v1"},
		{"ARRI LogC4", "Linear ARRI Wide Gamut 4", "IDT.ARRI.LogC4.a1.v1"},
		{"Blackmagic Film Wide Gamut Gen5", "Linear BMD Wide Gamut Gen5", "IDT.BlackmagicDesign.BMDFilm_WideGamut_Gen5.a1.v1"},
		{"Canon Log2 Cinema Gamut D55", "Linear Canon Cinema Gamut Daylight", "IDT.Canon.Canon_Log2_CinemaGamut_D55.a1.v1"},
		{"Canon Log3 Cinema Gamut D55", "Linear Canon Cinema Gamut Daylight", "IDT.Canon.Canon_Log3_CinemaGamut_D55.a1.v1"},
		{"Panasonic V-Log V-Gamut", "Linear Panasonic V-Gamut", "IDT.Panasonic.VLog_VGamut.a1.v1"},
		{"RED Log3G10 REDWideGamutRGB", "Linear REDWideGamutRGB", "IDT.RED.Log3G10_REDWideGamutRGB.a1.v1"},
		{"Sony SLog3 SGamut3", "Linear Sony SGamut3", "IDT.Sony.SLog3_SGamut3.a1.v1"},
		{"Sony SLog3 SGamut3.Cine", "Linear Sony SGamut3.Cine", "IDT.Sony.SLog3_SGamut3Cine.a1.v1"},
		{"Sony SLog3 Venice SGamut3", "Linear Sony Venice SGamut3", "IDT.Sony.SLog3_Venice_SGamut3.a1.v1"},
		{"Sony SLog3 Venice SGamut3.Cine", "Linear Sony Venice SGamut3.Cine", "IDT.Sony.SLog3_Venice_SGamut3Cine.a1.v1"},
	}
}

package amf

import (
	"testing"

	"github.com/mrjoshuak/go-amf/ocio"
)

func refConfig(t *testing.T) ocio.Config {
	t.Helper()
	ref, err := ocio.CreateFromBuiltin(ocio.BuiltinStudioConfig)
	if err != nil {
		t.Fatalf("CreateFromBuiltin: %v", err)
	}
	return ref
}

func TestSearchColorSpacesMatchesBySubstring(t *testing.T) {
	ref := refConfig(t)
	cs, ok := searchColorSpaces(ref, "IDT.ARRI.Alexa-v3-logC-EI800.a1.v1")
	if !ok {
		t.Fatal("searchColorSpaces: not found")
	}
	if cs.Name != "ARRI LogC3 (EI800)" {
		t.Errorf("Name = %q, want ARRI LogC3 (EI800)", cs.Name)
	}
}

func TestSearchColorSpacesNoMatch(t *testing.T) {
	ref := refConfig(t)
	if _, ok := searchColorSpaces(ref, "no such transform id"); ok {
		t.Error("searchColorSpaces: matched, want no match")
	}
}

func TestSearchViewTransformsMatchesBySubstring(t *testing.T) {
	ref := refConfig(t)
	vt, ok := searchViewTransforms(ref, "ODT.Academy.Rec709_100nits_dim.a1.1.0")
	if !ok {
		t.Fatal("searchViewTransforms: not found")
	}
	if vt.Name != "Rec.709 (100 nits) - Rec.709" {
		t.Errorf("Name = %q", vt.Name)
	}
}

func TestSearchLookTransformsReturnsIndependentCopy(t *testing.T) {
	ref := refConfig(t)
	l, ok := searchLookTransforms(ref, "punchy, saturated look")
	if !ok {
		t.Fatal("searchLookTransforms: not found")
	}
	l.Name = "renamed"
	orig, _ := ref.Look("Rec.709 Punchy")
	if orig.Name != "Rec.709 Punchy" {
		t.Errorf("mutating the returned look mutated the reference config: %q", orig.Name)
	}
}

func TestLinearCompanionRecognizesAllElevenCameraSpaces(t *testing.T) {
	want := []string{
		"ARRI LogC3 (EI800)", "ARRI LogC4", "Blackmagic Film Wide Gamut Gen5",
		"Canon Log2 Cinema Gamut D55", "Canon Log3 Cinema Gamut D55",
		"Panasonic V-Log V-Gamut", "RED Log3G10 REDWideGamutRGB",
		"Sony SLog3 SGamut3", "Sony SLog3 SGamut3.Cine",
		"Sony SLog3 Venice SGamut3", "Sony SLog3 Venice SGamut3.Cine",
	}
	for _, logName := range want {
		if _, ok := linearCompanion(logName); !ok {
			t.Errorf("linearCompanion(%q): not recognized", logName)
		}
	}
	if len(cameraMapping) != 11 {
		t.Errorf("len(cameraMapping) = %d, want 11", len(cameraMapping))
	}
}

func TestLinearCompanionUnknownSpace(t *testing.T) {
	if _, ok := linearCompanion("not a camera space"); ok {
		t.Error("linearCompanion: matched an unknown space")
	}
}

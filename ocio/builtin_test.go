package ocio

import "testing"

func TestStudioConfigHasACESCore(t *testing.T) {
	cfg, err := CreateFromBuiltin(BuiltinStudioConfig)
	if err != nil {
		t.Fatalf("CreateFromBuiltin: %v", err)
	}
	for _, name := range []string{"ACES2065-1", "ACEScg", "ACEScct", "CIE-XYZ-D65", "Raw"} {
		if _, ok := cfg.ColorSpace(name); !ok {
			t.Errorf("missing core color space %q", name)
		}
	}
	if v := cfg.Version(); !v.AtLeast(Version{Major: 2, Minor: 3}) {
		t.Errorf("Version() = %v, want at least 2.3", v)
	}
}

func TestCameraLogSpacesHaveTransformIDDescriptions(t *testing.T) {
	cfg, _ := CreateFromBuiltin(BuiltinStudioConfig)
	for _, cam := range cameraLogSpaces() {
		cs, ok := cfg.ColorSpace(cam.logName)
		if !ok {
			t.Fatalf("missing camera log space %q", cam.logName)
		}
		if cs.Description == "" {
			t.Errorf("camera log space %q has empty description", cam.logName)
		}
		if _, ok := cfg.ColorSpace(cam.linearName); !ok {
			t.Errorf("missing linear companion %q for %q", cam.linearName, cam.logName)
		}
	}
	if len(cameraLogSpaces()) != 11 {
		t.Errorf("len(cameraLogSpaces()) = %d, want 11", len(cameraLogSpaces()))
	}
}

func TestCreateFromFileRejectsMissingPath(t *testing.T) {
	if _, err := CreateFromFile("/does/not/exist.ocio"); err == nil {
		t.Errorf("CreateFromFile(missing) = nil error, want error")
	}
}

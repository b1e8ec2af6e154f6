package ocio

import "testing"

func TestCreateRawHasDefaultDisplayView(t *testing.T) {
	cfg := CreateRaw()
	if cfg.NumColorSpaces() != 1 {
		t.Errorf("NumColorSpaces() = %d, want 1", cfg.NumColorSpaces())
	}
	if got := cfg.ActiveDisplays(); len(got) != 1 || got[0] != "sRGB" {
		t.Errorf("ActiveDisplays() = %v, want [sRGB]", got)
	}
}

func TestAddColorSpaceRequiresName(t *testing.T) {
	cfg := CreateRaw()
	if err := cfg.AddColorSpace(&ColorSpace{}); err == nil {
		t.Errorf("AddColorSpace(unnamed) = nil, want error")
	}
}

func TestRemoveColorSpaceNotFound(t *testing.T) {
	cfg := CreateRaw()
	if err := cfg.RemoveColorSpace("nope"); err == nil {
		t.Errorf("RemoveColorSpace(missing) = nil, want error")
	}
}

func TestAddDisplaySharedViewGuardsDuplicates(t *testing.T) {
	cfg := CreateRaw()
	if err := cfg.AddSharedView("shared", "vt", "cs", ""); err != nil {
		t.Fatalf("AddSharedView: %v", err)
	}
	if err := cfg.AddDisplaySharedView("Display A", "shared"); err != nil {
		t.Fatalf("AddDisplaySharedView #1: %v", err)
	}
	if err := cfg.AddDisplaySharedView("Display A", "shared"); err != nil {
		t.Fatalf("AddDisplaySharedView #2 (duplicate) should be a no-op, got: %v", err)
	}
	count := 0
	for _, dv := range cfg.(*memConfig).displayViews {
		if dv.display == "Display A" && dv.view == "shared" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("display/view bound %d times, want 1", count)
	}
}

func TestSetRoleThenUnset(t *testing.T) {
	cfg := CreateRaw()
	cfg.SetRole("default", "Raw")
	if n := cfg.NumRoles(); n != 1 {
		t.Fatalf("NumRoles() = %d, want 1", n)
	}
	cfg.UnsetRole("default")
	if n := cfg.NumRoles(); n != 0 {
		t.Errorf("NumRoles() after unset = %d, want 0", n)
	}
}

func TestValidateRejectsUnregisteredReference(t *testing.T) {
	cfg := CreateRaw()
	cfg.AddColorSpace(&ColorSpace{
		Name:                 "Weird",
		ToReferenceTransform: ColorSpaceTransform{Src: "Weird", Dst: "DoesNotExist"},
	})
	cfg.SetActiveDisplays([]string{"sRGB"})
	if err := cfg.Validate(); err == nil {
		t.Errorf("Validate() = nil, want error for dangling color space reference")
	}
}

func TestEditableCopyIsIndependent(t *testing.T) {
	cfg := CreateFromBuiltinMust(t)
	cp := cfg.EditableCopy()
	cp.AddColorSpace(&ColorSpace{Name: "Extra"})
	if _, ok := cfg.ColorSpace("Extra"); ok {
		t.Errorf("mutating copy affected original config")
	}
}

func CreateFromBuiltinMust(t *testing.T) Config {
	t.Helper()
	cfg, err := CreateFromBuiltin(BuiltinStudioConfig)
	if err != nil {
		t.Fatalf("CreateFromBuiltin: %v", err)
	}
	return cfg
}

func TestCreateFromBuiltinUnknownName(t *testing.T) {
	if _, err := CreateFromBuiltin("not-a-real-config"); err == nil {
		t.Errorf("CreateFromBuiltin(bogus) = nil error, want error")
	}
}

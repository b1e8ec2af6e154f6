// Package ocio defines the reference-config collaborator the AMF compiler
// consumes: a capability set for looking up and assembling color-management
// configuration objects (color spaces, displays/views, looks, roles, named
// transforms) backed by a reference ACES/OCIO-style configuration.
//
// Nothing in this package evaluates or renders a color transform. It is a
// pure data and lookup layer; the host color-pipeline runtime that executes
// the assembled config lives outside this module entirely.
package ocio

import "fmt"

// Version is a config schema version, e.g. (2, 3).
type Version struct {
	Major int
	Minor int
}

// AtLeast reports whether v is greater than or equal to other.
func (v Version) AtLeast(other Version) bool {
	if v.Major != other.Major {
		return v.Major > other.Major
	}
	return v.Minor >= other.Minor
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// ColorSpace describes a named color space and its connection to the
// reference space.
type ColorSpace struct {
	Name                 string
	Family               string
	Categories           []string
	Description          string
	IsData               bool
	ToReferenceTransform   Transform
	FromReferenceTransform Transform
}

// ViewTransform describes a named display-rendering transform (an RRT+ODT
// pairing, in ACES terms) from the reference space toward a display.
type ViewTransform struct {
	Name        string
	Description string
	Transform   Transform
}

// Look is a named, optionally-reversible creative grade applied in a
// specific process space.
type Look struct {
	Name            string
	ProcessSpace    string
	Description     string
	Transform        Transform
	InverseTransform Transform
}

// NamedTransform is a standalone, registerable transform not tied to any
// color space (e.g. a synthesized clip-to-working-space conversion).
type NamedTransform struct {
	Name             string
	Family           string
	ForwardTransform Transform
	InverseTransform Transform
}

// UseDisplayColorSpaceName is the OCIO sentinel meaning "use the display's
// own color space name" when registering a display-shared-view binding.
const UseDisplayColorSpaceName = "<USE_DISPLAY_NAME>"

// FileRules holds the (small) subset of OCIO file-rule state the compiler
// touches: the default rule's color space.
type FileRules struct {
	DefaultColorSpace string
}

// Config is the capability set consumed from the reference-config
// collaborator, per spec.md §6. It is intentionally not an exhaustive OCIO
// binding — only the operations the AMF compiler actually calls.
type Config interface {
	Version() Version
	SetVersion(v Version)

	ColorSpace(name string) (*ColorSpace, bool)
	NumColorSpaces() int
	ColorSpaceNameByIndex(i int) (string, bool)
	AddColorSpace(cs *ColorSpace) error
	RemoveColorSpace(name string) error

	ViewTransform(name string) (*ViewTransform, bool)
	NumViewTransforms() int
	ViewTransformByIndex(i int) (*ViewTransform, bool)
	AddViewTransform(vt *ViewTransform) error

	Look(name string) (*Look, bool)
	NumLooks() int
	LookByIndex(i int) (*Look, bool)
	AddLook(l *Look) error

	NamedTransform(name string) (*NamedTransform, bool)
	AddNamedTransform(nt *NamedTransform) error

	AddDisplayView(display, view, colorSpace, looks string) error
	RemoveDisplayView(display, view string) error
	AddSharedView(name, viewTransform, colorSpace, looks string) error
	AddDisplaySharedView(display, sharedView string) error

	NumRoles() int
	RoleByIndex(i int) (role, colorSpace string, ok bool)
	SetRole(role, colorSpace string)
	UnsetRole(role string)

	SetFileRulesDefaultColorSpace(name string)
	FileRules() FileRules

	SetActiveDisplays(names []string)
	ActiveDisplays() []string
	SetActiveViews(names []string)
	ActiveViews() []string

	SetInactiveColorSpaces(names []string)
	InactiveColorSpaces() []string

	AddSearchPath(path string)
	SearchPaths() []string

	AddEnvironmentVar(key, value string)
	EnvironmentVar(key string) (string, bool)

	// Validate checks the invariant that every color space referenced by a
	// transform inside the config is itself registered (spec.md §3
	// Invariant 1), among other structural checks.
	Validate() error

	// EditableCopy returns a deep, independently mutable copy of the config.
	EditableCopy() Config
}

// CreateRaw returns a config with a single default display/view pair
// ("sRGB"/"Raw") bound to a single "Raw" color space -- the OCIO "raw"
// factory config the builder starts from before stripping the defaults and
// seeding the ACES core spaces (spec.md §4.4.1).
func CreateRaw() Config {
	cfg := newMemConfig()
	cfg.version = Version{Major: 1, Minor: 0}
	cfg.addColorSpaceUnchecked(&ColorSpace{
		Name:        "Raw",
		Family:      "Raw",
		Description: "A raw color space, for data that shouldn't be color managed",
		IsData:      true,
	})
	cfg.addDisplayViewUnchecked("sRGB", "Raw", "Raw", "")
	cfg.activeDisplays = []string{"sRGB"}
	cfg.activeViews = []string{"Raw"}
	return cfg
}

// ErrNotFound is returned (wrapped) when a named lookup fails.
var ErrNotFound = fmt.Errorf("ocio: not found")

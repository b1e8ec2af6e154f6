package ocio

import (
	"fmt"
	"strings"
)

// displayView is a single (display, view) binding.
type displayView struct {
	display, view, colorSpace, looks string
}

// sharedView is a view registered once and bound to multiple displays.
type sharedView struct {
	name, viewTransform, colorSpace, looks string
}

// memConfig is an in-memory Config implementation. It backs both the
// "create raw" / "create from builtin" factories and the config the AMF
// compiler builds into; a reference config loaded this way is read-only in
// spirit (callers are expected to call EditableCopy before mutating), but
// memConfig does not itself enforce that -- the real collaborator would.
type memConfig struct {
	version Version

	colorSpaceOrder []string
	colorSpaces     map[string]*ColorSpace

	viewTransformOrder []string
	viewTransforms     map[string]*ViewTransform

	lookOrder []string
	looks     map[string]*Look

	namedTransforms map[string]*NamedTransform

	displayViews []displayView
	sharedViews  map[string]sharedView
	displayOrder []string // displays in registration order

	roleOrder []string
	roles     map[string]string

	fileRules FileRules

	activeDisplays      []string
	activeViews         []string
	inactiveColorSpaces []string

	searchPaths []string
	envVars     map[string]string
	envOrder    []string
}

func newMemConfig() *memConfig {
	return &memConfig{
		colorSpaces:     make(map[string]*ColorSpace),
		viewTransforms:  make(map[string]*ViewTransform),
		looks:           make(map[string]*Look),
		namedTransforms: make(map[string]*NamedTransform),
		sharedViews:     make(map[string]sharedView),
		roles:           make(map[string]string),
		envVars:         make(map[string]string),
	}
}

func (c *memConfig) Version() Version      { return c.version }
func (c *memConfig) SetVersion(v Version)  { c.version = v }

func (c *memConfig) ColorSpace(name string) (*ColorSpace, bool) {
	cs, ok := c.colorSpaces[name]
	return cs, ok
}

func (c *memConfig) NumColorSpaces() int { return len(c.colorSpaceOrder) }

func (c *memConfig) ColorSpaceNameByIndex(i int) (string, bool) {
	if i < 0 || i >= len(c.colorSpaceOrder) {
		return "", false
	}
	return c.colorSpaceOrder[i], true
}

func (c *memConfig) addColorSpaceUnchecked(cs *ColorSpace) {
	if _, exists := c.colorSpaces[cs.Name]; !exists {
		c.colorSpaceOrder = append(c.colorSpaceOrder, cs.Name)
	}
	c.colorSpaces[cs.Name] = cs
}

func (c *memConfig) AddColorSpace(cs *ColorSpace) error {
	if cs == nil || cs.Name == "" {
		return fmt.Errorf("ocio: color space must have a name")
	}
	c.addColorSpaceUnchecked(cs)
	return nil
}

func (c *memConfig) RemoveColorSpace(name string) error {
	if _, ok := c.colorSpaces[name]; !ok {
		return fmt.Errorf("ocio: remove color space %q: %w", name, ErrNotFound)
	}
	delete(c.colorSpaces, name)
	for i, n := range c.colorSpaceOrder {
		if n == name {
			c.colorSpaceOrder = append(c.colorSpaceOrder[:i], c.colorSpaceOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (c *memConfig) ViewTransform(name string) (*ViewTransform, bool) {
	vt, ok := c.viewTransforms[name]
	return vt, ok
}

func (c *memConfig) NumViewTransforms() int { return len(c.viewTransformOrder) }

func (c *memConfig) ViewTransformByIndex(i int) (*ViewTransform, bool) {
	if i < 0 || i >= len(c.viewTransformOrder) {
		return nil, false
	}
	return c.viewTransforms[c.viewTransformOrder[i]], true
}

func (c *memConfig) AddViewTransform(vt *ViewTransform) error {
	if vt == nil || vt.Name == "" {
		return fmt.Errorf("ocio: view transform must have a name")
	}
	if _, exists := c.viewTransforms[vt.Name]; !exists {
		c.viewTransformOrder = append(c.viewTransformOrder, vt.Name)
	}
	c.viewTransforms[vt.Name] = vt
	return nil
}

func (c *memConfig) Look(name string) (*Look, bool) {
	l, ok := c.looks[name]
	return l, ok
}

func (c *memConfig) NumLooks() int { return len(c.lookOrder) }

func (c *memConfig) LookByIndex(i int) (*Look, bool) {
	if i < 0 || i >= len(c.lookOrder) {
		return nil, false
	}
	return c.looks[c.lookOrder[i]], true
}

func (c *memConfig) AddLook(l *Look) error {
	if l == nil || l.Name == "" {
		return fmt.Errorf("ocio: look must have a name")
	}
	if _, exists := c.looks[l.Name]; !exists {
		c.lookOrder = append(c.lookOrder, l.Name)
	}
	cp := *l
	c.looks[l.Name] = &cp
	return nil
}

func (c *memConfig) NamedTransform(name string) (*NamedTransform, bool) {
	nt, ok := c.namedTransforms[name]
	return nt, ok
}

func (c *memConfig) AddNamedTransform(nt *NamedTransform) error {
	if nt == nil || nt.Name == "" {
		return fmt.Errorf("ocio: named transform must have a name")
	}
	c.namedTransforms[nt.Name] = nt
	return nil
}

func (c *memConfig) addDisplayViewUnchecked(display, view, colorSpace, looks string) {
	found := false
	for _, d := range c.displayOrder {
		if d == display {
			found = true
			break
		}
	}
	if !found {
		c.displayOrder = append(c.displayOrder, display)
	}
	c.displayViews = append(c.displayViews, displayView{display, view, colorSpace, looks})
}

func (c *memConfig) AddDisplayView(display, view, colorSpace, looks string) error {
	for _, dv := range c.displayViews {
		if dv.display == display && dv.view == view {
			return fmt.Errorf("ocio: display %q already has view %q", display, view)
		}
	}
	c.addDisplayViewUnchecked(display, view, colorSpace, looks)
	return nil
}

func (c *memConfig) RemoveDisplayView(display, view string) error {
	for i, dv := range c.displayViews {
		if dv.display == display && dv.view == view {
			c.displayViews = append(c.displayViews[:i], c.displayViews[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("ocio: remove display/view %s/%s: %w", display, view, ErrNotFound)
}

func (c *memConfig) AddSharedView(name, viewTransform, colorSpace, looks string) error {
	if name == "" {
		return fmt.Errorf("ocio: shared view must have a name")
	}
	c.sharedViews[name] = sharedView{name, viewTransform, colorSpace, looks}
	return nil
}

func (c *memConfig) AddDisplaySharedView(display, sharedViewName string) error {
	sv, ok := c.sharedViews[sharedViewName]
	if !ok {
		return fmt.Errorf("ocio: shared view %q: %w", sharedViewName, ErrNotFound)
	}
	for _, dv := range c.displayViews {
		if dv.display == display && dv.view == sharedViewName {
			// Already bound; guard against duplicate registration
			// (spec.md §4.4.4).
			return nil
		}
	}
	c.addDisplayViewUnchecked(display, sv.name, sv.colorSpace, sv.looks)
	return nil
}

func (c *memConfig) NumRoles() int { return len(c.roleOrder) }

func (c *memConfig) RoleByIndex(i int) (string, string, bool) {
	if i < 0 || i >= len(c.roleOrder) {
		return "", "", false
	}
	role := c.roleOrder[i]
	return role, c.roles[role], true
}

func (c *memConfig) SetRole(role, colorSpace string) {
	if _, exists := c.roles[role]; !exists {
		c.roleOrder = append(c.roleOrder, role)
	}
	c.roles[role] = colorSpace
}

func (c *memConfig) UnsetRole(role string) {
	if _, exists := c.roles[role]; !exists {
		return
	}
	delete(c.roles, role)
	for i, r := range c.roleOrder {
		if r == role {
			c.roleOrder = append(c.roleOrder[:i], c.roleOrder[i+1:]...)
			break
		}
	}
}

func (c *memConfig) SetFileRulesDefaultColorSpace(name string) {
	c.fileRules.DefaultColorSpace = name
}

func (c *memConfig) FileRules() FileRules { return c.fileRules }

func (c *memConfig) SetActiveDisplays(names []string) {
	c.activeDisplays = append([]string(nil), names...)
}

func (c *memConfig) ActiveDisplays() []string { return append([]string(nil), c.activeDisplays...) }

func (c *memConfig) SetActiveViews(names []string) {
	c.activeViews = append([]string(nil), names...)
}

func (c *memConfig) ActiveViews() []string { return append([]string(nil), c.activeViews...) }

func (c *memConfig) SetInactiveColorSpaces(names []string) {
	c.inactiveColorSpaces = append([]string(nil), names...)
}

func (c *memConfig) InactiveColorSpaces() []string {
	return append([]string(nil), c.inactiveColorSpaces...)
}

func (c *memConfig) AddSearchPath(path string) {
	c.searchPaths = append(c.searchPaths, path)
}

func (c *memConfig) SearchPaths() []string { return append([]string(nil), c.searchPaths...) }

func (c *memConfig) AddEnvironmentVar(key, value string) {
	if _, exists := c.envVars[key]; !exists {
		c.envOrder = append(c.envOrder, key)
	}
	c.envVars[key] = value
}

func (c *memConfig) EnvironmentVar(key string) (string, bool) {
	v, ok := c.envVars[key]
	return v, ok
}

// Validate checks spec.md §3 Invariant 1: every color space referenced by a
// transform inside the config must itself be registered.
func (c *memConfig) Validate() error {
	referenced := make(map[string]struct{})
	for _, name := range c.colorSpaceOrder {
		cs := c.colorSpaces[name]
		collectColorSpaceRefs(cs.ToReferenceTransform, referenced)
		collectColorSpaceRefs(cs.FromReferenceTransform, referenced)
	}
	for _, name := range c.lookOrder {
		l := c.looks[name]
		collectColorSpaceRefs(l.Transform, referenced)
		collectColorSpaceRefs(l.InverseTransform, referenced)
	}
	for name := range c.namedTransforms {
		nt := c.namedTransforms[name]
		collectColorSpaceRefs(nt.ForwardTransform, referenced)
		collectColorSpaceRefs(nt.InverseTransform, referenced)
	}
	for ref := range referenced {
		if ref == "" || strings.HasPrefix(ref, "$") {
			// "$NAME" is OCIO context-variable syntax, resolved against an
			// environment var at use time (AddEnvironmentVar), not a
			// registered color space name.
			continue
		}
		if _, ok := c.colorSpaces[ref]; !ok {
			return fmt.Errorf("ocio: validate: transform references unregistered color space %q", ref)
		}
	}
	if len(c.activeDisplays) == 0 {
		return fmt.Errorf("ocio: validate: no active display set")
	}
	if _, ok := c.colorSpaces["ACES2065-1"]; !ok {
		return fmt.Errorf("ocio: validate: %w", ErrMissingRefAces)
	}
	return nil
}

// collectColorSpaceRefs walks a transform tree recording every color-space
// name it mentions by src/dst/display.
func collectColorSpaceRefs(t Transform, out map[string]struct{}) {
	switch v := t.(type) {
	case nil:
		return
	case ColorSpaceTransform:
		out[v.Src] = struct{}{}
		out[v.Dst] = struct{}{}
	case LookTransform:
		out[v.Src] = struct{}{}
		out[v.Dst] = struct{}{}
	case DisplayViewTransform:
		out[v.Src] = struct{}{}
	case GroupTransform:
		for _, sub := range v.Transforms {
			collectColorSpaceRefs(sub, out)
		}
	case FileTransform, CDLTransform, MatrixTransform:
		// No color-space references.
	}
}

func (c *memConfig) EditableCopy() Config {
	cp := newMemConfig()
	cp.version = c.version
	cp.colorSpaceOrder = append([]string(nil), c.colorSpaceOrder...)
	for k, v := range c.colorSpaces {
		csCopy := *v
		cp.colorSpaces[k] = &csCopy
	}
	cp.viewTransformOrder = append([]string(nil), c.viewTransformOrder...)
	for k, v := range c.viewTransforms {
		vtCopy := *v
		cp.viewTransforms[k] = &vtCopy
	}
	cp.lookOrder = append([]string(nil), c.lookOrder...)
	for k, v := range c.looks {
		lCopy := *v
		cp.looks[k] = &lCopy
	}
	for k, v := range c.namedTransforms {
		ntCopy := *v
		cp.namedTransforms[k] = &ntCopy
	}
	cp.displayViews = append([]displayView(nil), c.displayViews...)
	cp.displayOrder = append([]string(nil), c.displayOrder...)
	for k, v := range c.sharedViews {
		cp.sharedViews[k] = v
	}
	cp.roleOrder = append([]string(nil), c.roleOrder...)
	for k, v := range c.roles {
		cp.roles[k] = v
	}
	cp.fileRules = c.fileRules
	cp.activeDisplays = append([]string(nil), c.activeDisplays...)
	cp.activeViews = append([]string(nil), c.activeViews...)
	cp.inactiveColorSpaces = append([]string(nil), c.inactiveColorSpaces...)
	cp.searchPaths = append([]string(nil), c.searchPaths...)
	cp.envOrder = append([]string(nil), c.envOrder...)
	for k, v := range c.envVars {
		cp.envVars[k] = v
	}
	return cp
}

// ErrMissingRefAces is returned (wrapped) by Validate when a config lacks the
// ACES2065-1 color space; amf.Compile passes it on wrapped with
// errors.Wrap, not as an amf.CompileError.
var ErrMissingRefAces = fmt.Errorf("ocio: reference config lacks ACES2065-1")

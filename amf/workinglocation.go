package amf

import (
	"fmt"

	"github.com/mrjoshuak/go-amf/ocio"
)

// reassembleWorkingLocation implements spec.md §4.5 (C5): synthesize the
// named transform that carries a clip's pixels from their as-delivered state
// to the point in the pipeline -- the "working location" -- where further
// grading is meant to pick up.
//
// If the AMF carried no aces:workingLocation marker, there is no working
// location to reassemble and this is a no-op.
func (b *builder) reassembleWorkingLocation() error {
	if b.doc.NumLooksBeforeWorkingLocation == nil {
		return nil
	}
	wl := *b.doc.NumLooksBeforeWorkingLocation

	outputApplied := b.doc.Output.HasAttrValue("applied", "true")
	numApplied := b.info.NumLooksApplied

	var forward bool
	switch {
	case outputApplied:
		forward = false
	case numApplied < wl:
		forward = true
	case numApplied > wl:
		forward = false
	default:
		forward = true
	}

	var group []ocio.Transform
	if forward {
		group = b.workingLocationForward(wl)
	} else {
		group = b.workingLocationBackward(wl)
	}

	if len(group) == 0 {
		group = append(group, ocio.IdentityMatrix())
	}

	nt := &ocio.NamedTransform{
		Name:             fmt.Sprintf("AMF Clip to Working Space Transform -- %s", b.clipName),
		Family:           fmt.Sprintf("AMF/%s", b.clipName),
		ForwardTransform: ocio.GroupTransform{Transforms: group},
	}
	return b.cfg.AddNamedTransform(nt)
}

// workingLocationForward walks registered looks in registration order,
// counting an external index, and appends a forward LookTransform for each
// not-yet-applied, non-seed look at or before the working-location split.
func (b *builder) workingLocationForward(wl int) []ocio.Transform {
	var group []ocio.Transform
	if !b.doc.Input.HasAttrValue("applied", "true") {
		group = append(group, ocio.ColorSpaceTransform{
			Src: b.info.InputColorSpaceName, Dst: "ACES2065-1", DataBypass: true,
		})
	}
	for _, cl := range b.looks {
		if cl.IsSeed || cl.Applied {
			continue
		}
		if cl.ExternalIndex <= wl {
			group = append(group, ocio.LookTransform{
				Src: "ACES2065-1", Dst: "ACES2065-1", Looks: cl.Name, Direction: ocio.DirectionForward,
			})
		}
	}
	return group
}

// workingLocationBackward walks registered looks in reverse registration
// order, counting a reverse-index from the tail, and appends an inverse
// LookTransform for each already-applied look whose reverse-index falls at
// or within the working-location split (spec.md §4.5).
func (b *builder) workingLocationBackward(wl int) []ocio.Transform {
	var group []ocio.Transform
	if b.doc.Output.HasAttrValue("applied", "true") {
		group = append(group, ocio.DisplayViewTransform{
			Src: "ACES2065-1", Display: b.info.DisplayName, View: b.info.ViewName, Direction: ocio.DirectionInverse,
		})
	}

	var nonSeed []compiledLook
	for _, cl := range b.looks {
		if !cl.IsSeed {
			nonSeed = append(nonSeed, cl)
		}
	}
	reverseIdx := 0
	for i := len(nonSeed) - 1; i >= 0; i-- {
		reverseIdx++
		cl := nonSeed[i]
		if cl.Applied && reverseIdx <= wl {
			group = append(group, ocio.LookTransform{
				Src: "ACES2065-1", Dst: "ACES2065-1", Looks: cl.Name, Direction: ocio.DirectionInverse,
			})
		}
	}
	return group
}

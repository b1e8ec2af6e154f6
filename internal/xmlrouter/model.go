// Package xmlrouter drives a streaming XML parser over an AMF document and
// stages its contents into the AMF Intermediate Model (AIM): a neutral,
// behavior-free record of what the document said, with no reference-config
// resolution performed yet.
//
// This corresponds to components C1 (XML Event Router) and C2 (AMF
// Intermediate Model) of the AMF compiler.
package xmlrouter

import "strings"

// Element is an ordered (name, value) pair: either an XML attribute or a
// leaf sub-element's character data. Ordering within a record is
// significant -- later passes scan for marker names and consume subsequent
// entries until the next marker.
type Element struct {
	Name  string
	Value string
}

// TransformRecord is the shared shape of clipId and lookTransform records: an
// ordered list of XML attributes plus an ordered list of sub-elements.
type TransformRecord struct {
	Attributes  []Element
	SubElements []Element
}

// Empty reports whether no attributes or sub-elements were recorded.
func (r *TransformRecord) Empty() bool {
	return len(r.Attributes) == 0 && len(r.SubElements) == 0
}

// Attr returns the first attribute matching name, case-insensitively.
func (r *TransformRecord) Attr(name string) (string, bool) {
	for _, a := range r.Attributes {
		if strings.EqualFold(a.Name, name) {
			return a.Value, true
		}
	}
	return "", false
}

// HasAttrValue reports whether an attribute named name has the given value,
// comparing both name and value case-insensitively (spec.md §9).
func (r *TransformRecord) HasAttrValue(name, value string) bool {
	v, ok := r.Attr(name)
	return ok && strings.EqualFold(v, value)
}

// SubElement returns the value of the first sub-element named name,
// case-insensitively.
func (r *TransformRecord) SubElement(name string) (string, bool) {
	for _, e := range r.SubElements {
		if strings.EqualFold(e.Name, name) {
			return e.Value, true
		}
	}
	return "", false
}

// IndexOf returns the index of the first sub-element named name at or after
// start, or -1 if none is found. Used to locate marker anchors such as
// "inverseOutputDeviceTransform" or "cdlWorkingSpace" (spec.md §3).
func (r *TransformRecord) IndexOf(name string, start int) int {
	for i := start; i < len(r.SubElements); i++ {
		if strings.EqualFold(r.SubElements[i].Name, name) {
			return i
		}
	}
	return -1
}

// IOTransformRecord specializes TransformRecord for the input/output
// transform elements, which may contain a nested top-level-descendant (TLD)
// transform (the inverse ODT/RRT embedded in an inputTransform, or the
// forward ODT/RRT embedded in an outputTransform).
type IOTransformRecord struct {
	TransformRecord

	// TLDElements holds the sub-elements that belong directly to the outer
	// transform (i.e. were seen while the TLD stack top was the outer tag
	// itself), distinct from SubElements which belong to the nested
	// transform.
	TLDElements []Element

	// tldStack is the router's internal nesting stack; exported only via
	// TLDDepth for tests.
	tldStack []string
}

// TLDDepth reports how deeply nested the current (or final) TLD stack is.
func (r *IOTransformRecord) TLDDepth() int { return len(r.tldStack) }

// Empty reports whether the record recorded nothing at all.
func (r *IOTransformRecord) Empty() bool {
	return r.TransformRecord.Empty() && len(r.TLDElements) == 0
}

// TLDElement returns the value of the first direct (non-nested) sub-element
// named name, case-insensitively.
func (r *IOTransformRecord) TLDElement(name string) (string, bool) {
	for _, e := range r.TLDElements {
		if strings.EqualFold(e.Name, name) {
			return e.Value, true
		}
	}
	return "", false
}

// InputTransformRecord is the AIM record for aces:inputTransform.
type InputTransformRecord struct {
	IOTransformRecord
	// IsInverse is set when a nested inverse ODT/RRT transform was seen,
	// indicating pixels still need the inverse output view applied before
	// they are expressed in the chosen input color space.
	IsInverse bool
}

// OutputTransformRecord is the AIM record for aces:outputTransform.
type OutputTransformRecord struct {
	IOTransformRecord
}

// LookTransformRecord is the AIM record for one aces:lookTransform element.
type LookTransformRecord struct {
	TransformRecord
}

// ClipIDRecord is the AIM record for aces:clipId.
type ClipIDRecord struct {
	TransformRecord
}

// Document is the complete AMF Intermediate Model for one parsed AMF file:
// one clipId record, one input record, one output record, an ordered list
// of look records, and the working-location split index.
type Document struct {
	ClipID ClipIDRecord
	Input  InputTransformRecord
	Output OutputTransformRecord
	Looks  []LookTransformRecord

	// NumLooksBeforeWorkingLocation is nil if no aces:workingLocation tag
	// was seen inside the pipeline; otherwise it holds the number of look
	// records already appended at the moment the tag was encountered
	// (spec.md §3, §9 -- modeled as an explicit optional rather than the
	// source's unsigned -1 sentinel).
	NumLooksBeforeWorkingLocation *int
}

// markerNames used as nested-transform anchors inside input/output records.
var markerNames = []string{
	"inverseOutputDeviceTransform",
	"inverseReferenceRenderingTransform",
	"outputDeviceTransform",
	"referenceRenderingTransform",
}

func isMarkerTag(name string) bool {
	for _, m := range markerNames {
		if strings.EqualFold(m, name) {
			return true
		}
	}
	return false
}

// lookMarkerNames used as nested-section anchors inside lookTransform
// records (the CDL working-space sub-transforms).
var lookMarkerNames = []string{
	"cdlWorkingSpace",
	"toCdlWorkingSpace",
	"fromCdlWorkingSpace",
}

func isLookMarkerTag(name string) bool {
	for _, m := range lookMarkerNames {
		if strings.EqualFold(m, name) {
			return true
		}
	}
	return false
}

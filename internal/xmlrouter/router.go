package xmlrouter

import (
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"strings"
)

// ParseFile reads and routes one AMF document from path.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse routes one AMF document held entirely in memory. The whole document
// is buffered up front (AMF manifests are small, kilobytes not gigabytes)
// so that a parse failure can be attributed to a precise source line by
// counting newlines up to the decoder's reported input offset.
func Parse(data []byte) (*Document, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	doc := &Document{}

	var (
		insideInput, insideOutput, insideLook, insideClipID, insidePipeline bool
		currentElement                                                     string
		curLook                                                            *LookTransformRecord
	)

	lineAt := func(offset int64) int {
		if offset < 0 || int(offset) > len(data) {
			offset = int64(len(data))
		}
		return 1 + bytes.Count(data[:offset], []byte{'\n'})
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Line: lineAt(dec.InputOffset()), Err: err}
		}

		switch se := tok.(type) {
		case xml.StartElement:
			name := se.Name.Local
			switch {
			case strings.EqualFold(name, "clipId"):
				insideClipID = true

			case strings.EqualFold(name, "inputTransform"):
				insideInput = true
				copyAttrs(&doc.Input.Attributes, se.Attr)
				doc.Input.tldStack = append(doc.Input.tldStack, name)

			case strings.EqualFold(name, "outputTransform"):
				insideOutput = true
				copyAttrs(&doc.Output.Attributes, se.Attr)
				doc.Output.tldStack = append(doc.Output.tldStack, name)

			case strings.EqualFold(name, "lookTransform"):
				insideLook = true
				doc.Looks = append(doc.Looks, LookTransformRecord{})
				curLook = &doc.Looks[len(doc.Looks)-1]
				copyAttrs(&curLook.Attributes, se.Attr)

			case strings.EqualFold(name, "pipeline"):
				insidePipeline = true

			case insidePipeline && strings.EqualFold(name, "workingLocation"):
				n := len(doc.Looks)
				doc.NumLooksBeforeWorkingLocation = &n

			case insideInput && isMarkerTag(name):
				doc.Input.IsInverse = true
				doc.Input.tldStack = append(doc.Input.tldStack, name)
				doc.Input.SubElements = append(doc.Input.SubElements, Element{Name: name})

			case insideOutput && isMarkerTag(name):
				doc.Output.tldStack = append(doc.Output.tldStack, name)
				doc.Output.SubElements = append(doc.Output.SubElements, Element{Name: name})

			case insideLook && strings.EqualFold(name, "ColorCorrectionRef"):
				if curLook == nil {
					return nil, &InternalError{Line: lineAt(dec.InputOffset()), Message: "ColorCorrectionRef outside lookTransform"}
				}
				curLook.SubElements = append(curLook.SubElements, Element{
					Name:  "cdl:ColorCorrectionRef",
					Value: firstAttrValue(se.Attr),
				})

			case insideLook && isLookMarkerTag(name):
				if curLook == nil {
					return nil, &InternalError{Line: lineAt(dec.InputOffset()), Message: "cdl working-space marker outside lookTransform"}
				}
				curLook.SubElements = append(curLook.SubElements, Element{Name: name})
				currentElement = ""

			default:
				currentElement = name
			}

		case xml.CharData:
			text := strings.TrimSpace(string(se))
			if text == "" {
				continue
			}
			if currentElement == "" {
				// A marker container emitted text directly (not expected
				// for any recognized element); drop it rather than
				// misattributing it to a stale tag name.
				continue
			}
			switch {
			case insideInput:
				top := ""
				if n := len(doc.Input.tldStack); n > 0 {
					top = doc.Input.tldStack[n-1]
				}
				if strings.EqualFold(top, "inputTransform") {
					doc.Input.TLDElements = append(doc.Input.TLDElements, Element{Name: currentElement, Value: text})
				} else {
					doc.Input.SubElements = append(doc.Input.SubElements, Element{Name: currentElement, Value: text})
				}
			case insideOutput:
				top := ""
				if n := len(doc.Output.tldStack); n > 0 {
					top = doc.Output.tldStack[n-1]
				}
				if strings.EqualFold(top, "outputTransform") {
					doc.Output.TLDElements = append(doc.Output.TLDElements, Element{Name: currentElement, Value: text})
				} else {
					doc.Output.SubElements = append(doc.Output.SubElements, Element{Name: currentElement, Value: text})
				}
			case insideLook:
				if curLook == nil {
					return nil, &InternalError{Line: lineAt(dec.InputOffset()), Message: "character data outside lookTransform"}
				}
				curLook.SubElements = append(curLook.SubElements, Element{Name: currentElement, Value: text})
			case insideClipID:
				doc.ClipID.SubElements = append(doc.ClipID.SubElements, Element{Name: currentElement, Value: text})
			}

		case xml.EndElement:
			name := se.Name.Local
			switch {
			case strings.EqualFold(name, "clipId"):
				insideClipID = false
			case strings.EqualFold(name, "inputTransform"):
				insideInput = false
				popTLD(&doc.Input.tldStack)
			case strings.EqualFold(name, "outputTransform"):
				insideOutput = false
				popTLD(&doc.Output.tldStack)
			case strings.EqualFold(name, "lookTransform"):
				insideLook = false
				curLook = nil
			case strings.EqualFold(name, "pipeline"):
				insidePipeline = false
			case insideInput && isMarkerTag(name):
				popTLD(&doc.Input.tldStack)
			case insideOutput && isMarkerTag(name):
				popTLD(&doc.Output.tldStack)
			}
			currentElement = ""
		}
	}

	return doc, nil
}

func copyAttrs(dst *[]Element, attrs []xml.Attr) {
	for _, a := range attrs {
		*dst = append(*dst, Element{Name: a.Name.Local, Value: a.Value})
	}
}

func firstAttrValue(attrs []xml.Attr) string {
	if len(attrs) == 0 {
		return ""
	}
	return attrs[0].Value
}

func popTLD(stack *[]string) {
	if n := len(*stack); n > 0 {
		*stack = (*stack)[:n-1]
	}
}

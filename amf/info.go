package amf

// AMFInfo summarizes the clip identity and the key color-management
// decisions the compiler made, for a host to report or log (spec.md §3).
// Compile populates it in place; it is never read by Compile.
type AMFInfo struct {
	// ClipIdentifier is the role name synthesized for this clip, matching
	// /^amf_clip_[0-9A-Za-z_]+$/.
	ClipIdentifier string

	// ClipName is the human-readable identifier drawn from the AMF's
	// aces:clipId/aces:clipName element.
	ClipName string

	// InputColorSpaceName is the color space chosen to represent the
	// clip's input pixels in the built config.
	InputColorSpaceName string

	// ClipColorSpaceName is the final answer to "which color space are the
	// pixels currently in?" after considering what was already applied.
	ClipColorSpaceName string

	// DisplayName and ViewName are the chosen active display and view.
	DisplayName string
	ViewName    string

	// NumLooksApplied counts the look transforms marked as already applied
	// to pixels.
	NumLooksApplied int
}

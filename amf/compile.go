package amf

import (
	"path/filepath"
	"regexp"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/mrjoshuak/go-amf/internal/xmlrouter"
	"github.com/mrjoshuak/go-amf/ocio"
)

// minRefVersion is the oldest reference-config schema version the compiler
// accepts (spec.md §4.2).
var minRefVersion = ocio.Version{Major: 2, Minor: 3}

// Options configures a single Compile call.
type Options struct {
	// RefConfigPath, if set, loads the reference config from this path via
	// ocio.CreateFromFile. If empty, ocio.CreateFromBuiltin(ocio.BuiltinStudioConfig)
	// is used instead.
	RefConfigPath string
}

// Compile parses the AMF document at amfPath, resolves it against a
// reference color configuration, and returns the assembled config. info, if
// non-nil, is populated with the clip identity and the key color-management
// decisions the compiler made.
func Compile(amfPath string, info *AMFInfo, opts Options) (ocio.Config, error) {
	ref, err := loadReferenceConfig(opts)
	if err != nil {
		return nil, err
	}
	if !ref.Version().AtLeast(minRefVersion) {
		return nil, newError(ErrKindUnsupportedRefVersion, 0,
			"reference config version %s is older than the minimum supported %s", ref.Version(), minRefVersion)
	}

	doc, err := xmlrouter.ParseFile(amfPath)
	if err != nil {
		return nil, wrapParseError(err)
	}

	if info == nil {
		info = &AMFInfo{}
	}
	*info = AMFInfo{}

	clipName, _ := doc.ClipID.SubElement("clipName")
	if clipName == "" {
		clipName = "unnamed_clip"
	}
	if clipUUID, ok := doc.ClipID.SubElement("uuid"); ok && clipUUID != "" {
		if _, err := uuid.Parse(clipUUID); err != nil {
			return nil, errors.Wrapf(err, "amf: clip uuid %q is not a valid UUID", clipUUID)
		}
	}

	info.ClipName = clipName
	info.ClipIdentifier = sanitizeRoleName(clipName)

	b := &builder{
		ref:      ref,
		doc:      doc,
		clipName: clipName,
		clipDir:  filepath.Dir(amfPath),
		info:     info,
	}

	if err := b.init(); err != nil {
		return nil, err
	}
	if err := b.processInput(); err != nil {
		return nil, err
	}
	if err := b.processOutput(); err != nil {
		return nil, err
	}
	if err := b.processLooks(); err != nil {
		return nil, err
	}
	if err := b.reassembleWorkingLocation(); err != nil {
		return nil, err
	}

	info.ClipColorSpaceName = b.clipColorSpace()
	b.cfg.SetRole(info.ClipIdentifier, info.ClipColorSpaceName)

	if err := b.cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "amf: built config failed validation")
	}

	return b.cfg, nil
}

func loadReferenceConfig(opts Options) (ocio.Config, error) {
	if opts.RefConfigPath != "" {
		return ocio.CreateFromFile(opts.RefConfigPath)
	}
	return ocio.CreateFromBuiltin(ocio.BuiltinStudioConfig)
}

func wrapParseError(err error) error {
	var pe *xmlrouter.ParseError
	if errors.As(err, &pe) {
		return newError(ErrKindXMLParse, pe.Line, "%v", pe.Err)
	}
	var ie *xmlrouter.InternalError
	if errors.As(err, &ie) {
		return newError(ErrKindInternalParse, ie.Line, "%s", ie.Message)
	}
	return newError(ErrKindXMLParse, 0, "%v", err)
}

var roleNamePattern = regexp.MustCompile(`^amf_clip_[0-9A-Za-z_]+$`)

// clipRoleNameValid reports whether name matches the role-name invariant
// spec.md §3 requires for AMFInfo.ClipIdentifier. Used by tests; never
// called by Compile itself since sanitizeRoleName always produces a name
// the pattern accepts -- unless clipName sanitizes to the empty string, in
// which case the trailing segment is empty and the pattern does not match.
func clipRoleNameValid(name string) bool {
	return roleNamePattern.MatchString(name)
}

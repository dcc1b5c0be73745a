// Package pathutil provides label and path validation for sealog.
package pathutil

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/sealog-project/sealog/pkg/errclass"
)

var labelRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._ -]*$`)

// ValidateLabel checks a phase or decision label. Labels are NFC-normalized,
// must not contain control characters, and are limited to word characters,
// dots, underscores, spaces, and hyphens.
func ValidateLabel(kind, label string) error {
	if label == "" {
		return errclass.ErrNameInvalid.WithMessagef("%s must not be empty", kind)
	}

	label = norm.NFC.String(label)

	for _, r := range label {
		if unicode.IsControl(r) {
			return errclass.ErrNameInvalid.WithMessagef("%s must not contain control characters: %q", kind, label)
		}
	}

	if !labelRegex.MatchString(label) {
		return errclass.ErrNameInvalid.WithMessagef("%s must match [a-zA-Z0-9._ -]+: %s", kind, label)
	}
	return nil
}

// ValidateName checks a workspace directory name.
func ValidateName(name string) error {
	if name == "" {
		return errclass.ErrNameInvalid.WithMessage("name must not be empty")
	}

	name = norm.NFC.String(name)

	if name == ".." || strings.Contains(name, "..") {
		return errclass.ErrNameInvalid.WithMessagef("name must not contain '..': %s", name)
	}
	if strings.ContainsAny(name, "/\\") {
		return errclass.ErrNameInvalid.WithMessagef("name must not contain separators: %s", name)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return errclass.ErrNameInvalid.WithMessagef("name must not contain control characters: %q", name)
		}
	}
	return nil
}

// ValidateSourcePath verifies that a document source path resolved against
// root does not escape the workspace.
func ValidateSourcePath(root, path string) error {
	resolved := path
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(root, resolved)
	}
	rel, err := filepath.Rel(root, filepath.Clean(resolved))
	if err != nil {
		return errclass.ErrPathEscape.WithMessagef("resolve %s: %v", path, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return errclass.ErrPathEscape.WithMessagef("source escapes workspace root: %s", path)
	}
	return nil
}

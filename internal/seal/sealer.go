// Package seal computes deterministic content and chain hashes over ordered
// document sets.
//
// Ordering is load-bearing: sources are concatenated in list order, and
// directories are expanded in lexicographic path order. Changing either order
// changes the resulting hash.
package seal

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/sealog-project/sealog/pkg/errclass"
	"github.com/sealog-project/sealog/pkg/model"
)

// HashText computes the lowercase hex SHA-256 digest of the UTF-8 bytes of
// text. The empty string hashes to the digest of zero bytes.
func HashText(text string) model.HashValue {
	sum := sha256.Sum256([]byte(text))
	return model.HashValue(hex.EncodeToString(sum[:]))
}

// Combine applies the chaining rule: the digest of the text concatenation of
// a content hash and the previous chain hash (or the Genesis sentinel). Both
// operands are concatenated as-is; the sentinel receives no special hashing.
func Combine(contentHash, previous model.HashValue) model.HashValue {
	return HashText(string(contentHash) + string(previous))
}

// ReadDocument reads a single file as UTF-8 text. Unreadable or non-UTF-8
// content fails with E_READ naming the path; it is never skipped.
func ReadDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errclass.ErrRead.WithMessagef("read %s: %v", path, err)
	}
	if !utf8.Valid(data) {
		return "", errclass.ErrRead.WithMessagef("%s is not valid UTF-8 text", path)
	}
	return string(data), nil
}

// ReadAll reads every regular file under dir recursively, visiting files in
// lexicographic path order, and concatenates their contents with no
// separators. The order is independent of filesystem creation order. Any
// entry that cannot be read as text fails the whole operation.
func ReadAll(dir string) (string, error) {
	var paths []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return "", errclass.ErrRead.WithMessagef("walk %s: %v", dir, err)
	}

	// Walk visits in lexical order already; sort anyway so the contract does
	// not depend on that implementation detail.
	sort.Strings(paths)

	var buf strings.Builder
	for _, p := range paths {
		text, err := ReadDocument(p)
		if err != nil {
			return "", err
		}
		buf.WriteString(text)
	}
	return buf.String(), nil
}

// Seal flattens the document set into a single byte sequence (sources in
// list order, directories expanded via ReadAll), hashes it into a content
// hash, and chains that against previous. Pure: identical inputs always
// produce identical results, and no stored state is touched.
func Seal(sources []model.DocumentSource, previous model.HashValue) (model.SealResult, error) {
	var buf strings.Builder
	for _, src := range sources {
		var (
			text string
			err  error
		)
		if src.Dir {
			text, err = ReadAll(src.Path)
		} else {
			text, err = ReadDocument(src.Path)
		}
		if err != nil {
			return model.SealResult{}, err
		}
		buf.WriteString(text)
	}

	contentHash := HashText(buf.String())
	return model.SealResult{
		ContentHash: contentHash,
		ChainHash:   Combine(contentHash, previous),
	}, nil
}

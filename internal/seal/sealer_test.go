package seal_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sealog-project/sealog/internal/seal"
	"github.com/sealog-project/sealog/pkg/errclass"
	"github.com/sealog-project/sealog/pkg/model"
)

const emptySHA256 = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

func TestHashText_EmptyString(t *testing.T) {
	assert.Equal(t, model.HashValue(emptySHA256), seal.HashText(""))
}

func TestHashText_Deterministic(t *testing.T) {
	assert.Equal(t, seal.HashText("hello"), seal.HashText("hello"))
	assert.NotEqual(t, seal.HashText("hello"), seal.HashText("hello!"))
}

func TestCombine_MatchesTextConcatenation(t *testing.T) {
	content := seal.HashText("some content")
	combined := seal.Combine(content, model.Genesis)
	assert.Equal(t, seal.HashText(string(content)+"GENESIS"), combined)
}

func TestReadAll_LexicographicOrder(t *testing.T) {
	dir := t.TempDir()
	// Create b.txt before a.txt; traversal order must not follow creation order.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("B"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("A"), 0644))

	text, err := seal.ReadAll(dir)
	require.NoError(t, err)
	assert.Equal(t, "AB", text)
}

func TestReadAll_Recursive(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "top.txt"), []byte("top"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "inner.txt"), []byte("inner"), 0644))

	text, err := seal.ReadAll(dir)
	require.NoError(t, err)
	// "nested/inner.txt" sorts before "top.txt".
	assert.Equal(t, "innertop", text)
}

func TestReadAll_EmptyDir(t *testing.T) {
	text, err := seal.ReadAll(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestReadAll_BinaryFileFails(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "blob.bin")
	require.NoError(t, os.WriteFile(bad, []byte{0xff, 0xfe, 0x00, 0x80}, 0644))

	_, err := seal.ReadAll(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errclass.ErrRead))
	assert.Contains(t, err.Error(), "blob.bin")
}

func TestReadDocument_MissingFile(t *testing.T) {
	_, err := seal.ReadDocument(filepath.Join(t.TempDir(), "absent.md"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errclass.ErrRead))
}

func TestSeal_Deterministic(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(doc, []byte("state"), 0644))
	sources := []model.DocumentSource{{Path: doc}}

	first, err := seal.Seal(sources, model.Genesis)
	require.NoError(t, err)
	second, err := seal.Seal(sources, model.Genesis)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSeal_ChainsAgainstPrevious(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(doc, []byte("state"), 0644))
	sources := []model.DocumentSource{{Path: doc}}

	result, err := seal.Seal(sources, model.Genesis)
	require.NoError(t, err)
	assert.Equal(t, seal.HashText("state"), result.ContentHash)
	assert.Equal(t, seal.Combine(result.ContentHash, model.Genesis), result.ChainHash)

	// Same content, different predecessor: content hash unchanged, chain hash not.
	other, err := seal.Seal(sources, result.ChainHash)
	require.NoError(t, err)
	assert.Equal(t, result.ContentHash, other.ContentHash)
	assert.NotEqual(t, result.ChainHash, other.ChainHash)
}

func TestSeal_SingleByteSensitivity(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(doc, []byte("state A"), 0644))
	sources := []model.DocumentSource{{Path: doc}}

	before, err := seal.Seal(sources, model.Genesis)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(doc, []byte("state B"), 0644))
	after, err := seal.Seal(sources, model.Genesis)
	require.NoError(t, err)

	assert.NotEqual(t, before.ContentHash, after.ContentHash)
	assert.NotEqual(t, before.ChainHash, after.ChainHash)
}

func TestSeal_SourceOrderMatters(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.md")
	b := filepath.Join(dir, "b.md")
	require.NoError(t, os.WriteFile(a, []byte("alpha"), 0644))
	require.NoError(t, os.WriteFile(b, []byte("beta"), 0644))

	forward, err := seal.Seal([]model.DocumentSource{{Path: a}, {Path: b}}, model.Genesis)
	require.NoError(t, err)
	reversed, err := seal.Seal([]model.DocumentSource{{Path: b}, {Path: a}}, model.Genesis)
	require.NoError(t, err)

	assert.NotEqual(t, forward.ContentHash, reversed.ContentHash)
}

func TestSeal_MixedFilesAndDirectory(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "doc.md")
	tree := filepath.Join(dir, "src")
	require.NoError(t, os.WriteFile(doc, []byte("head"), 0644))
	require.NoError(t, os.Mkdir(tree, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tree, "main.txt"), []byte("body"), 0644))

	result, err := seal.Seal([]model.DocumentSource{
		{Path: doc},
		{Path: tree, Dir: true},
	}, model.Genesis)
	require.NoError(t, err)
	assert.Equal(t, seal.HashText("headbody"), result.ContentHash)
}

func TestSeal_ReadErrorSurfacesPath(t *testing.T) {
	dir := t.TempDir()
	result, err := seal.Seal([]model.DocumentSource{{Path: filepath.Join(dir, "gone.md")}}, model.Genesis)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errclass.ErrRead))
	assert.Contains(t, err.Error(), "gone.md")
	assert.Empty(t, result.ContentHash)
}

func TestSeal_EmptySourceList(t *testing.T) {
	result, err := seal.Seal(nil, model.Genesis)
	require.NoError(t, err)
	assert.Equal(t, model.HashValue(emptySHA256), result.ContentHash)
}

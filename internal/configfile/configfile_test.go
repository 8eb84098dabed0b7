package configfile_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/modhost/internal/configfile"
	"github.com/vk/modhost/internal/loader"
	"github.com/vk/modhost/internal/registry"
	"github.com/vk/modhost/internal/resolve"
	"github.com/vk/modhost/internal/testutil"
)

func newBatchLoader(t *testing.T) (*loader.Loader, *testutil.FakeOpener, *registry.Registry) {
	t.Helper()
	opener := testutil.NewFakeOpener()
	reg := registry.New(nil)
	res := resolve.New(resolve.Platform{
		SearchEnv: "MODHOST_CONFIGFILE_TEST_SEARCH_PATH",
		ListSep:   ":",
	})
	return loader.New(opener, res, reg), opener, reg
}

func TestLoad_SkipsCommentsAndBlanks(t *testing.T) {
	t.Parallel()

	// --- Arrange --- five lines: two comments, one blank, two names.
	l, opener, _ := newBatchLoader(t)
	opener.AddModuleImage("alpha", "alpha")
	opener.AddModuleImage("beta", "beta")
	src := strings.NewReader("# leading comment\nalpha\n\n  # indented comment\nbeta\n")

	// --- Act ---
	result := configfile.Load(context.Background(), l, src)

	// --- Assert --- exactly two load attempts, in file order.
	assert.Equal(t, 2, result.Attempted)
	assert.Empty(t, result.Failures)
	assert.Equal(t, []string{"alpha", "beta"}, opener.Opened)
}

func TestLoad_TrimsWhitespace(t *testing.T) {
	t.Parallel()

	l, opener, reg := newBatchLoader(t)
	opener.AddModuleImage("alpha", "alpha")
	src := strings.NewReader("  \talpha \t \n")

	result := configfile.Load(context.Background(), l, src)

	assert.Equal(t, 1, result.Attempted)
	assert.Equal(t, 1, reg.Len())
}

func TestLoad_LastLineWithoutNewline(t *testing.T) {
	t.Parallel()

	l, opener, _ := newBatchLoader(t)
	opener.AddModuleImage("alpha", "alpha")
	src := strings.NewReader("alpha")

	result := configfile.Load(context.Background(), l, src)

	assert.Equal(t, 1, result.Attempted)
	assert.Equal(t, []string{"alpha"}, opener.Opened)
}

func TestLoad_PerLineFailuresDoNotHaltBatch(t *testing.T) {
	t.Parallel()

	// --- Arrange --- the first name has no image, the second loads fine.
	l, opener, reg := newBatchLoader(t)
	opener.AddModuleImage("beta", "beta")
	src := strings.NewReader("missing\nbeta\n")

	// --- Act ---
	result := configfile.Load(context.Background(), l, src)

	// --- Assert ---
	assert.Equal(t, 2, result.Attempted)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, 1, result.Failures[0].Line)
	assert.Equal(t, "missing", result.Failures[0].Name)
	assert.ErrorIs(t, result.Failures[0].Err, loader.ErrLoadFailed)
	assert.Equal(t, 1, reg.Len())
}

func TestLoad_VeryLongLine(t *testing.T) {
	t.Parallel()

	// Legacy parsers capped lines at 255 bytes; this one must not.
	l, opener, _ := newBatchLoader(t)
	long := strings.Repeat("a", 4096)
	opener.AddModuleImage(long, "long")
	src := strings.NewReader(long + "\n")

	result := configfile.Load(context.Background(), l, src)

	assert.Equal(t, 1, result.Attempted)
	assert.Empty(t, result.Failures)
}

func TestLoadFile_MissingFileIsNoOp(t *testing.T) {
	t.Parallel()

	l, opener, _ := newBatchLoader(t)

	var result configfile.Result
	require.NotPanics(t, func() {
		result = configfile.LoadFile(context.Background(), l, filepath.Join(t.TempDir(), "absent.txt"))
	})

	assert.Equal(t, 0, result.Attempted)
	assert.Empty(t, opener.Opened)
}

func TestLoadFile_ReadsFromDisk(t *testing.T) {
	t.Parallel()

	l, opener, _ := newBatchLoader(t)
	opener.AddModuleImage("alpha", "alpha")
	path := filepath.Join(t.TempDir(), "modules.txt")
	require.NoError(t, os.WriteFile(path, []byte("# modules\nalpha\n"), 0o600))

	result := configfile.LoadFile(context.Background(), l, path)

	assert.Equal(t, 1, result.Attempted)
	assert.Empty(t, result.Failures)
}

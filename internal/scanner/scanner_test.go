package scanner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/offlinegate/offlinegate/internal/policy"
	"github.com/offlinegate/offlinegate/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExtractor struct {
	name  string
	out   string
	err   error
	calls int
}

func (f *fakeExtractor) Name() string { return f.name }

func (f *fakeExtractor) Extract(_ context.Context, _ string) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.out), nil
}

func writeBinary(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "app")
	require.NoError(t, os.WriteFile(p, []byte("\x7fELF"), 0755))
	return p
}

func TestScan_MissingBinaryFailsOpen(t *testing.T) {
	nm := &fakeExtractor{name: "nm -D", out: "socket("}
	s := NewBinaryScanner(Chain{nm}, policy.Default())

	res := s.Scan(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.True(t, res.Passed)
	assert.Empty(t, res.Matches)
	assert.True(t, res.Stats.Unverified)
	require.Len(t, res.Warnings(), 1)
	assert.Equal(t, types.DiagMissingArtifact, res.Diagnostics[0].Kind)
	assert.Zero(t, nm.calls, "no tool runs for a missing artifact")
}

func TestScan_FirstToolDumpContainsSocket(t *testing.T) {
	bin := writeBinary(t)
	nm := &fakeExtractor{name: "nm -D", out: "                 U malloc\n                 U socket(int, int, int)\n"}
	objdump := &fakeExtractor{name: "objdump -t", out: "clean"}
	s := NewBinaryScanner(Chain{nm, objdump}, policy.Default())

	res := s.Scan(context.Background(), bin)
	assert.False(t, res.Passed)
	require.Len(t, res.Matches, 1)
	assert.Equal(t, "socket(", res.Matches[0].Pattern)
	assert.Equal(t, types.CatBinarySymbol, res.Matches[0].Category)
	assert.Equal(t, bin, res.Matches[0].Path)
	assert.Equal(t, "U socket(int, int, int)", res.Matches[0].Location)
	assert.Equal(t, "nm -D", res.Stats.Tool)
	assert.Equal(t, Digest([]byte(nm.out)), res.Stats.Digest)
	assert.Zero(t, objdump.calls, "fallback must not run after a successful dump")
	assert.False(t, res.Stats.Unverified)
}

func TestScan_FallbackToSecondTool(t *testing.T) {
	bin := writeBinary(t)
	nm := &fakeExtractor{name: "nm -D", err: errors.New("exited with status 1")}
	objdump := &fakeExtractor{name: "objdump -t", out: "0000 g F .text _CFReadStreamOpen\n0000 g F .text _NSStreamThing\n"}
	s := NewBinaryScanner(Chain{nm, objdump}, policy.Default())

	res := s.Scan(context.Background(), bin)
	assert.False(t, res.Passed)
	assert.Equal(t, "objdump -t", res.Stats.Tool)

	var got []string
	for _, m := range res.Matches {
		got = append(got, m.Pattern)
	}
	// registry order, one match per pattern
	assert.Equal(t, []string{"NSStream", "CFReadStream"}, got)

	// the superseded nm failure is kept, but only as info
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, types.LevelInfo, res.Diagnostics[0].Level)
	assert.Empty(t, res.Warnings())
}

func TestScan_CleanDump(t *testing.T) {
	bin := writeBinary(t)
	nm := &fakeExtractor{name: "nm -D", out: "U malloc\nU free\nU printf\n"}
	res := NewBinaryScanner(Chain{nm}, policy.Default()).Scan(context.Background(), bin)
	assert.True(t, res.Passed)
	assert.Empty(t, res.Matches)
	assert.NotNil(t, res.Matches)
	assert.Empty(t, res.Diagnostics)
}

// Both tools failing is a known soft spot: the binary passes unverified.
func TestScan_AllToolsFailFailsOpen(t *testing.T) {
	bin := writeBinary(t)
	nm := &fakeExtractor{name: "nm -D", err: errors.New("exited with status 1")}
	objdump := &fakeExtractor{name: "objdump -t", err: ErrUnavailable}
	res := NewBinaryScanner(Chain{nm, objdump}, policy.Default()).Scan(context.Background(), bin)

	assert.True(t, res.Passed)
	assert.Empty(t, res.Matches)
	assert.True(t, res.Stats.Unverified)
	assert.Empty(t, res.Stats.Tool)

	warns := res.Warnings()
	require.Len(t, warns, 3)
	assert.Equal(t, types.DiagToolFailure, warns[0].Kind)
	assert.Equal(t, types.DiagToolUnavailable, warns[1].Kind)
	assert.Equal(t, types.DiagToolFailure, warns[2].Kind)
	assert.Contains(t, warns[2].Message, "could not analyze binary")
	assert.Equal(t, 1, nm.calls)
	assert.Equal(t, 1, objdump.calls)
}

func TestScan_EmptyChainFailsOpen(t *testing.T) {
	res := NewBinaryScanner(nil, policy.Default()).Scan(context.Background(), writeBinary(t))
	assert.True(t, res.Passed)
	assert.True(t, res.Stats.Unverified)
}

func TestScan_Idempotent(t *testing.T) {
	bin := writeBinary(t)
	nm := &fakeExtractor{name: "nm -D", out: "U connect(\nU bind(\nU recvfrom(\n"}
	s := NewBinaryScanner(Chain{nm}, policy.Default())

	first := s.Scan(context.Background(), bin)
	second := s.Scan(context.Background(), bin)
	assert.Equal(t, first, second)
	assert.Len(t, first.Matches, 3)
}

func TestChain_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	nm := &fakeExtractor{name: "nm -D", out: "socket("}

	dump, tool, diags := Chain{nm}.Extract(ctx, "x")
	assert.Nil(t, dump)
	assert.Empty(t, tool)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "cancelled")
	assert.Zero(t, nm.calls)
}

func TestDigest_Stable(t *testing.T) {
	assert.Equal(t, Digest([]byte("abc")), Digest([]byte("abc")))
	assert.NotEqual(t, Digest([]byte("abc")), Digest([]byte("abd")))
	assert.Len(t, Digest(nil), 16)
}

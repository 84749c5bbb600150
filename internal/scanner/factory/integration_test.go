package factory

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/offlinegate/offlinegate/internal/config"
	"github.com/offlinegate/offlinegate/internal/policy"
	"github.com/offlinegate/offlinegate/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func script(t *testing.T, dir, name, body string) *string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte("#!/bin/sh\n"+body+"\n"), 0755))
	return &p
}

func setup(t *testing.T, nmBody, objdumpBody string) (*string, *string, string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell-script fake tools require a POSIX shell")
	}
	dir := t.TempDir()
	bin := filepath.Join(dir, "WhisperApp")
	require.NoError(t, os.WriteFile(bin, []byte("\x7fELF"), 0755))
	return script(t, dir, "nm", nmBody), script(t, dir, "objdump", objdumpBody), bin
}

func TestBinaryScan_NmFailsObjdumpFindsSymbol(t *testing.T) {
	nm, objdump, bin := setup(t,
		`echo "nm: $2: no symbols" >&2; exit 1`,
		`echo "0000000000000000 *UND* 0000000000000000 CFSocketCreate"`)
	s := New(Config{Tools: config.ToolsConfig{Nm: nm, Objdump: objdump}}, policy.Default())

	res := s.Scan(context.Background(), bin)
	assert.False(t, res.Passed)
	require.Len(t, res.Matches, 1)
	assert.Equal(t, "CFSocket", res.Matches[0].Pattern)
	assert.Equal(t, "objdump -t", res.Stats.Tool)
	assert.Empty(t, res.Warnings())
}

func TestBinaryScan_BothToolsErrorFailsOpen(t *testing.T) {
	nm, objdump, bin := setup(t, `exit 1`, `echo "socket(" ; exit 2`)
	s := New(Config{Tools: config.ToolsConfig{Nm: nm, Objdump: objdump}}, policy.Default())

	res := s.Scan(context.Background(), bin)
	// output of a failed tool is discarded, even when it would match
	assert.True(t, res.Passed)
	assert.Empty(t, res.Matches)
	assert.True(t, res.Stats.Unverified)
	assert.Len(t, res.Warnings(), 3)
}

func TestBinaryScan_ToolsMissingFailsOpen(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("posix paths")
	}
	dir := t.TempDir()
	bin := filepath.Join(dir, "app")
	require.NoError(t, os.WriteFile(bin, []byte("x"), 0644))
	nm := filepath.Join(dir, "missing-nm")
	objdump := filepath.Join(dir, "missing-objdump")
	s := New(Config{Tools: config.ToolsConfig{Nm: &nm, Objdump: &objdump}}, policy.Default())

	res := s.Scan(context.Background(), bin)
	assert.True(t, res.Passed)
	warns := res.Warnings()
	require.Len(t, warns, 3)
	assert.Equal(t, types.DiagToolUnavailable, warns[0].Kind)
	assert.Equal(t, types.DiagToolUnavailable, warns[1].Kind)
}

func TestBinaryScan_CleanDump(t *testing.T) {
	nm, objdump, bin := setup(t, `echo "U malloc"; echo "U free"`, `echo "socket("`)
	s := New(Config{Tools: config.ToolsConfig{Nm: nm, Objdump: objdump}}, policy.Default())

	res := s.Scan(context.Background(), bin)
	assert.True(t, res.Passed)
	assert.Equal(t, "nm -D", res.Stats.Tool)
	assert.False(t, res.Stats.Unverified)
}

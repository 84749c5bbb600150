package offlinegate

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/offlinegate/offlinegate/internal/config"
	"github.com/offlinegate/offlinegate/internal/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintPolicy(t *testing.T) {
	var out bytes.Buffer
	printPolicy(&out, policy.Default().With(nil, []string{"GRPCChannel"}))
	s := out.String()
	bi := strings.Index(s, "binary_symbol:")
	si := strings.Index(s, "source_text:")
	require.True(t, bi >= 0 && si > bi, s)
	assert.Contains(t, s[bi:si], "  CFSocket\n")
	assert.Contains(t, s[si:], "  import Network\n")
	assert.Contains(t, s[si:], "  GRPCChannel\n")
}

func TestPrintTools_Unavailable(t *testing.T) {
	dir := t.TempDir()
	nm := filepath.Join(dir, "missing-nm")
	objdump := filepath.Join(dir, "missing-objdump")
	var out bytes.Buffer
	printTools(context.Background(), &out, config.ToolsConfig{Nm: &nm, Objdump: &objdump})
	s := out.String()
	assert.Contains(t, s, "nm -D")
	assert.Contains(t, s, "objdump -t")
	assert.Equal(t, 2, strings.Count(s, "unavailable"))
}

func TestPrintTools_Resolved(t *testing.T) {
	dir := t.TempDir()
	nm := fakeNm(t, dir, `echo "GNU nm (fake) 2.42"`)
	objdump := filepath.Join(dir, "missing-objdump")
	var out bytes.Buffer
	printTools(context.Background(), &out, config.ToolsConfig{Nm: &nm, Objdump: &objdump})
	assert.Contains(t, out.String(), "2.42")
}

func TestVersionString(t *testing.T) {
	assert.True(t, strings.HasPrefix(versionString(), "offlinegate "+version))
}

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"ticketscan/internal/domain"
	"ticketscan/internal/repair"
)

func runCLI(t *testing.T, args []string, stdin string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRepairCommand_TraceFromStdin(t *testing.T) {
	out, err := runCLI(t, []string{"repair"}, `Sure: {storeName: Walmart, totalPaid: "12,50",}`)

	require.NoError(t, err)
	for _, name := range repair.DefaultChain().Names() {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "State: parsed")
	assert.Contains(t, out, `"totalPaid": "12.50"`)
}

func TestRepairCommand_JSONFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reply.txt")
	require.NoError(t, os.WriteFile(path, []byte(`{"price": "n/a", "storeName": "A"}`), 0o600))

	out, err := runCLI(t, []string{"repair", "--json", path}, "")

	require.NoError(t, err)
	var rec domain.ReceiptRecord
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "A", *rec.StoreName)
}

func TestRepairCommand_Diagnostic(t *testing.T) {
	out, err := runCLI(t, []string{"repair", "--json"}, "no braces at all")

	var extErr *repair.ExtractionError
	require.True(t, errors.As(err, &extErr))
	assert.Contains(t, out, `"rawText": "no braces at all"`)
}

func TestRepairCommand_FallbackFlag(t *testing.T) {
	raw := `{"storeName": "A" "totalPaid": "1"}`

	_, err := runCLI(t, []string{"repair", "--json"}, raw)
	require.Error(t, err)

	out, err := runCLI(t, []string{"repair", "--json", "--fallback", "structural-repair"}, raw)
	require.NoError(t, err)
	assert.Contains(t, out, `"totalPaid": "1"`)

	_, err = runCLI(t, []string{"repair", "--fallback", "bogus"}, raw)
	assert.Error(t, err)
}

func TestStagesCommand(t *testing.T) {
	out, err := runCLI(t, []string{"stages"}, "")

	require.NoError(t, err)
	assert.Contains(t, out, "null-time")
	assert.Contains(t, out, "bare-keys")
	assert.Contains(t, out, "structural-repair")
}

func TestHashPasswordCommand(t *testing.T) {
	out, err := runCLI(t, []string{"hash-password", "--cost", "4", "s3cret"}, "")
	require.NoError(t, err)
	hash := strings.TrimSpace(out)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")))

	out, err = runCLI(t, []string{"hash-password", "--cost", "4"}, "piped\n")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(strings.TrimSpace(out)), []byte("piped")))

	_, err = runCLI(t, []string{"hash-password"}, "")
	assert.Error(t, err)
}

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const validSeed = `recipes:
  - id: 1
    title: Toast
    category: Breakfast
    ingredients: [bread, butter]
    instructions: Toast the bread.
    date_added: "2025-01-02"
  - id: 2
    title: Porridge
    category: Breakfast
    ingredients: [oats, milk]
    instructions: Simmer.
    date_added: "2025-01-03"
  - id: 3
    title: Ramen
    category: Japanese
    ingredients: [noodles, broth]
    instructions: Boil.
    image: ramen.jpg
    date_added: "2025-01-04"
`

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// execute runs cmd with args and returns stdout and stderr separately.
func execute(cmd *cobra.Command, args ...string) (string, string, error) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

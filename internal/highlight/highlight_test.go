package highlight

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"":         "",
		"  ":       "",
		"Go":       "go",
		"golang":   "go",
		"PY":       "python",
		"js":       "javascript",
		"C++":      "cpp",
		"yml":      "yaml",
		"txt":      Plain,
		"Haskell":  "haskell",
		" python ": "python",
	}
	for in, want := range tests {
		assert.Equal(t, want, Normalize(in), "Normalize(%q)", in)
	}
}

func TestNormalize_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				assert.Equal(t, "python", Normalize("PyThOn"))
				assert.Equal(t, "cpp", Normalize("C++"))
			}
		}()
	}
	wg.Wait()
}

func TestChroma_Highlight(t *testing.T) {
	out, err := New().Highlight(context.Background(), "package main\n\nfunc main() {}", "go")
	require.NoError(t, err)
	assert.Contains(t, out, `class="`)
	assert.Contains(t, out, "main")
	assert.False(t, strings.HasPrefix(out, "<pre"), "output should not carry a <pre> wrapper")
}

func TestChroma_Errors(t *testing.T) {
	_, err := New().Highlight(context.Background(), "x", "no-such-language")
	assert.ErrorContains(t, err, "no lexer")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = New().Highlight(ctx, "x", "go")
	assert.ErrorIs(t, err, context.Canceled)
}

package buffer

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_StartsAboveExistingTokens(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"", "__CODE_BLOCK_0__"},
		{"__CODE_BLOCK_3__", "__CODE_BLOCK_4__"},
		{"__EMOJI_BLOCK_9__ __MEDIA_BLOCK_2__", "__CODE_BLOCK_10__"},
		{"__FOO_BAR_BLOCK_41__", "__CODE_BLOCK_42__"},
		{"__code_block_5__", "__CODE_BLOCK_0__"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.text).Add(KindCode, ""))
		})
	}
}

func TestPending_IsBlock(t *testing.T) {
	p := New("")
	code := p.Add(KindCode, "c")
	media := p.Add(KindMedia, "m")
	inline := p.Add(KindInlineCode, "i")
	emoji := p.Add(KindEmoji, "e")

	assert.True(t, p.IsBlock(code))
	assert.True(t, p.IsBlock(media))
	assert.False(t, p.IsBlock(inline))
	assert.False(t, p.IsBlock(emoji))
	assert.False(t, p.IsBlock("__CODE_BLOCK_99__"))
	assert.Equal(t, 4, p.Len())
}

func TestPending_Restore(t *testing.T) {
	p := New("")
	a := p.Add(KindCode, "<pre>A</pre>")
	b := p.Add(KindInlineCode, "$1 __CODE_BLOCK_0__")

	got := p.Restore("x " + a + " y " + b + " " + a)
	// 替换结果中的占位符文本不会被再次替换
	assert.Equal(t, "x <pre>A</pre> y $1 __CODE_BLOCK_0__ <pre>A</pre>", got)
}

func TestPending_RestoreWithoutBlocks(t *testing.T) {
	assert.Equal(t, "__CODE_BLOCK_0__", New("").Restore("__CODE_BLOCK_0__"))
}

func TestPending_RestoreWaitsForFutures(t *testing.T) {
	p := New("")
	release := make(chan struct{})
	token := p.AddFuture(KindCode, Go(func() string {
		<-release
		return "late"
	}, "fallback"))

	done := make(chan string)
	go func() { done <- p.Restore(token) }()

	select {
	case <-done:
		t.Fatal("Restore returned before the future resolved")
	case <-time.After(20 * time.Millisecond):
	}
	close(release)
	assert.Equal(t, "late", <-done)
}

func TestGo_PanicResolvesToFallback(t *testing.T) {
	f := Go(func() string { panic("boom") }, "fallback")
	assert.Equal(t, "fallback", f.Wait())
}

func TestGo_RunsConcurrently(t *testing.T) {
	const n = 4
	var started atomic.Int32
	barrier := make(chan struct{})
	futures := make([]*Future, n)
	for i := range futures {
		futures[i] = Go(func() string {
			if started.Add(1) == n {
				close(barrier)
			}
			select {
			case <-barrier:
				return "ok"
			case <-time.After(5 * time.Second):
				return "timeout"
			}
		}, "fallback")
	}
	for _, f := range futures {
		require.Equal(t, "ok", f.Wait())
	}
}

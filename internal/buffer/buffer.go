package buffer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kinds of protected regions. Block kinds become their own paragraph.
const (
	KindCode       = "CODE"
	KindMedia      = "MEDIA"
	KindInlineCode = "INLINE_CODE"
	KindEmoji      = "EMOJI"
	KindImage      = "IMAGE"
)

// TokenPattern matches any placeholder token.
var TokenPattern = regexp.MustCompile(`__([A-Z]+(?:_[A-Z]+)*)_BLOCK_(\d+)__`)

// Future is a string computed in its own goroutine.
type Future struct {
	done chan struct{}
	html string
}

// Go starts fn and returns its future. A panic in fn resolves the
// future to fallback.
func Go(fn func() string, fallback string) *Future {
	f := &Future{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				f.html = fallback
			}
		}()
		f.html = fn()
	}()
	return f
}

// Resolved returns an already completed future.
func Resolved(html string) *Future {
	f := &Future{done: make(chan struct{}), html: html}
	close(f.done)
	return f
}

// Wait blocks until the future completes.
func (f *Future) Wait() string {
	<-f.done
	return f.html
}

// Block is one protected region awaiting restoration.
type Block struct {
	Placeholder string
	Kind        string
	future      *Future
}

// Pending collects the protected regions of one render.
type Pending struct {
	next   int
	blocks []Block
	kinds  map[string]string
}

// New creates a Pending whose token numbers start above any token
// already present in text, so user text never collides with them.
func New(text string) *Pending {
	next := 0
	for _, m := range TokenPattern.FindAllStringSubmatch(text, -1) {
		if n, err := strconv.Atoi(m[2]); err == nil && n >= next {
			next = n + 1
		}
	}
	return &Pending{next: next, kinds: make(map[string]string)}
}

// Add stores a resolved region and returns its placeholder.
func (p *Pending) Add(kind, html string) string {
	return p.AddFuture(kind, Resolved(html))
}

// AddFuture stores a pending region and returns its placeholder.
func (p *Pending) AddFuture(kind string, f *Future) string {
	token := fmt.Sprintf("__%s_BLOCK_%d__", kind, p.next)
	p.next++
	p.blocks = append(p.blocks, Block{Placeholder: token, Kind: kind, future: f})
	p.kinds[token] = kind
	return token
}

// Len returns the number of collected regions.
func (p *Pending) Len() int {
	return len(p.blocks)
}

// IsBlock reports whether token is a block-kind placeholder issued by
// p. Look-alike text typed by the user is not.
func (p *Pending) IsBlock(token string) bool {
	return IsBlockKind(p.kinds[token])
}

// Blocks returns the collected regions in insertion order.
func (p *Pending) Blocks() []Block {
	return p.blocks
}

// Restore waits for every region and substitutes each placeholder by
// exact match in a single pass.
func (p *Pending) Restore(text string) string {
	if len(p.blocks) == 0 {
		return text
	}
	pairs := make([]string, 0, 2*len(p.blocks))
	for _, b := range p.blocks {
		pairs = append(pairs, b.Placeholder, b.future.Wait())
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// IsBlockKind reports whether kind forms its own paragraph block.
func IsBlockKind(kind string) bool {
	return kind == KindCode || kind == KindMedia
}

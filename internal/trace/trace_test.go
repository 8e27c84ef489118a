package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for _, l := range []Level{LevelOff, LevelError, LevelPhase, LevelDetail, LevelDebug} {
		got, err := ParseLevel(strings.ToUpper(l.String()))
		require.NoError(t, err)
		assert.Equal(t, l, got)
	}
	_, err := ParseLevel("verbose")
	assert.ErrorContains(t, err, "invalid trace level")
}

func TestParseMode(t *testing.T) {
	for _, m := range []StorageMode{ModeStream, ModeRing, ModeBoth} {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseMode("disk")
	assert.EqualError(t, err, `invalid storage mode: "disk" (expected: stream|ring|both)`)
	assert.Equal(t, "unknown", StorageMode(0).String())
	assert.Equal(t, "unknown", Level(42).String())
}

func TestShouldEmit(t *testing.T) {
	assert.False(t, LevelOff.ShouldEmit(ScopeDriver))
	assert.False(t, LevelError.ShouldEmit(ScopeDriver))
	assert.True(t, LevelPhase.ShouldEmit(ScopePass))
	assert.False(t, LevelPhase.ShouldEmit(ScopeFunc))
	assert.True(t, LevelDetail.ShouldEmit(ScopeFunc))
	assert.False(t, LevelDetail.ShouldEmit(ScopeNode))
	assert.True(t, LevelDebug.ShouldEmit(ScopeNode))
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	require.NoError(t, err)
	assert.False(t, tr.Enabled())
	assert.Equal(t, Nop, tr)
}

func TestStreamTracerJSON(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelDetail, Mode: ModeStream, Format: FormatJSON, Output: &buf, RunID: "r1"})
	require.NoError(t, err)

	ctx := WithTracer(context.Background(), tr)
	ctx, pass := Begin(ctx, ScopePass, "calltree")
	_, fn := Begin(ctx, ScopeFunc, "func:main")
	fn.WithExtra("callees", "2").End("")
	_, node := Begin(ctx, ScopeNode, "stmt")
	node.End("")
	pass.End("done")
	require.NoError(t, tr.Close())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4, "node scope is filtered at detail level")

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &rec))
	assert.Equal(t, "func:main", rec["msg"])
	assert.Equal(t, "end", rec["kind"])
	assert.Equal(t, "2", rec["callees"])
	assert.Equal(t, "r1", rec["run"])
	assert.Equal(t, float64(pass.ID()), rec["parent"])

	require.NoError(t, json.Unmarshal([]byte(lines[3]), &rec))
	assert.Equal(t, "done", rec["detail"])
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		r.Emit(&Event{Kind: KindPoint, Scope: ScopeNode, Name: name})
	}
	snap := r.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "b", snap[0].Name)
	assert.Equal(t, "c", snap[1].Name)
	assert.Less(t, snap[0].Seq, snap[1].Seq)

	var buf bytes.Buffer
	require.NoError(t, r.Dump(&buf, FormatText))
	assert.Contains(t, buf.String(), "msg=b")
	assert.Contains(t, buf.String(), "msg=c")
}

func TestRingKeepsEverythingAtErrorLevel(t *testing.T) {
	r := NewRingTracer(4, LevelError)
	r.Emit(&Event{Kind: KindPoint, Scope: ScopeNode, Name: "x"})
	assert.Len(t, r.Snapshot(), 1)
}

func TestMultiTracerFansOut(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	require.NoError(t, err)
	m, ok := tr.(*MultiTracer)
	require.True(t, ok)

	Point(WithTracer(context.Background(), tr), ScopePass, "load", "prog.yaml")
	ring, ok := m.Ring()
	require.True(t, ok)
	assert.Len(t, ring.Snapshot(), 1)
	assert.Contains(t, buf.String(), "detail=prog.yaml")
}

func TestBeginWithoutTracer(t *testing.T) {
	ctx := context.Background()
	got, span := Begin(ctx, ScopeDriver, "analyze")
	assert.Equal(t, ctx, got)
	assert.Zero(t, span.End(""))
	assert.Zero(t, span.ID())
}

func TestSpanNesting(t *testing.T) {
	r := NewRingTracer(8, LevelDebug)
	ctx := WithTracer(context.Background(), r)
	assert.Zero(t, SpanID(ctx))

	outerCtx, outer := Begin(ctx, ScopeDriver, "analyze")
	assert.Equal(t, outer.ID(), SpanID(outerCtx))
	assert.Equal(t, r, FromContext(outerCtx))

	innerCtx, inner := Begin(outerCtx, ScopeFunc, "func:main")
	Point(innerCtx, ScopeNode, "stmt", "")
	inner.End("")
	outer.End("")

	snap := r.Snapshot()
	require.Len(t, snap, 5)
	assert.Zero(t, snap[0].ParentID)
	assert.Equal(t, outer.ID(), snap[1].ParentID)
	assert.Equal(t, inner.ID(), snap[2].ParentID)
	assert.Equal(t, KindSpanEnd, snap[3].Kind)
	assert.Equal(t, "func:main", snap[3].Name)
}

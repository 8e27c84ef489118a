package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tessera/internal/driver"
)

func TestRenderTextPlain(t *testing.T) {
	r := &driver.Report{
		Checks: []string{"flatten", "indexvars", "calltree"},
		Funcs: []*driver.FuncReport{
			{Name: "main", Kind: "internal", Flattened: true, CallTree: []string{"main", "helper"}},
			{
				Name: "helper", Kind: "internal",
				NonFlat:    []string{"x = ..."},
				IndexExprs: []driver.IndexExprReport{{Expr: "(i) a(i)", Free: []string{"i"}}},
				CallTree:   []string{"helper"},
			},
		},
		Unreachable: []string{"dead"},
	}
	var buf bytes.Buffer
	require.NoError(t, RenderText(&buf, r, TextOptions{}))

	pad := strings.Repeat(" ", 13)
	want := "main   (internal)\n" +
		"  flattened  yes\n" +
		"  calls      helper\n" +
		"\n" +
		"helper (internal)\n" +
		"  flattened  no\n" +
		pad + "x = ...\n" +
		"  index      (i) a(i)\n" +
		pad + "free [i]  reduction []\n" +
		"\n" +
		"unreachable\n" +
		"  dead\n"
	assert.Equal(t, want, buf.String())
}

func TestRenderTextSkipsDisabledFlatten(t *testing.T) {
	r := &driver.Report{
		Funcs:   []*driver.FuncReport{{Name: "f", Kind: "external", Flattened: true}},
		Dropped: 3,
	}
	var buf bytes.Buffer
	require.NoError(t, RenderText(&buf, r, TextOptions{}))
	assert.Equal(t, "f (external)\n\n3 diagnostics dropped\n", buf.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdefgh", 5))
	assert.Equal(t, "ab", truncate("abcdefgh", 2))
	assert.Equal(t, "abcdefgh", truncate("abcdefgh", 0))
	// Wide runes count double.
	assert.Equal(t, "日...", truncate("日本語テキスト", 6))
	assert.Equal(t, "ab  ", padRight("ab", 4))
}

func TestProgressModelTracksEvents(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("analyze", []string{"main", "helper"}, events).(*progressModel)

	m.Update(eventMsg(driver.Event{Func: "main", Stage: driver.StageIndexVars, Status: driver.StatusWorking}))
	m.Update(eventMsg(driver.Event{Func: "helper", Status: driver.StatusDone}))
	m.Update(eventMsg(driver.Event{Func: "unknown", Status: driver.StatusDone}))

	assert.Equal(t, "indexvars", m.items[0].status)
	assert.Equal(t, "done", m.items[1].status)
	assert.InDelta(t, 0.8, m.percent(), 1e-9)

	view := m.View()
	assert.Contains(t, view, "analyze")
	assert.Contains(t, view, "main")
	assert.Contains(t, view, "indexvars")

	_, cmd := m.Update(doneMsg{})
	assert.True(t, m.done)
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "done: analyze")
}

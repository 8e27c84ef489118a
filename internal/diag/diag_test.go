package diag

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatShort(t *testing.T) {
	items := []Diagnostic{
		NewError(AnaIndexVarInvalid, "main", "free variable j\ndoes not appear").WithNote("helper", "called from main"),
		New(SevWarning, CallUnreachable, "", "orphan is never called"),
	}
	want := "error ANA1003 main: free variable j does not appear\n" +
		"note ANA1003 helper: called from main\n" +
		"warning CAL2001 <program>: orphan is never called"
	assert.Equal(t, want, FormatShort(items, true))
	assert.NotContains(t, FormatShort(items, false), "note")
}

func TestBagLimitAndQueries(t *testing.T) {
	bag := NewBag(2)
	assert.True(t, bag.Add(New(SevInfo, AnaInfo, "f", "a")))
	assert.False(t, bag.HasWarnings())
	assert.True(t, bag.Add(New(SevWarning, AnaNotFlattened, "f", "b")))
	assert.False(t, bag.Add(New(SevError, AnaBlockedWrite, "f", "c")))
	assert.Equal(t, 2, bag.Len())
	assert.True(t, bag.HasWarnings())
	assert.False(t, bag.HasErrors())
}

func TestBagWithoutLimit(t *testing.T) {
	for _, max := range []int{0, -1, 0x10000} {
		bag := NewBag(max)
		assert.Equal(t, uint16(0xFFFF), bag.Cap())
		assert.Zero(t, cap(bag.Items()), "storage must not be reserved up front")
		for i := 0; i < 3; i++ {
			assert.True(t, bag.Add(New(SevError, IRDecodeError, "", "boom")))
		}
		assert.Equal(t, 3, bag.Len())
	}
}

func TestBagSortAndDedup(t *testing.T) {
	bag := NewBag(10)
	bag.Add(New(SevWarning, AnaNotFlattened, "b", "x"))
	bag.Add(New(SevInfo, AnaInfo, "a", "x"))
	bag.Add(New(SevError, AnaBlockedWrite, "a", "y"))
	bag.Add(New(SevWarning, AnaNotFlattened, "b", "x"))

	bag.Dedup()
	bag.Sort()
	assert.Equal(t,
		"error ANA1002 a: y\ninfo ANA1000 a: x\nwarning ANA1001 b: x",
		FormatShort(bag.Items(), false))
}

func TestBagMergeGrowsLimit(t *testing.T) {
	a := NewBag(1)
	a.Add(New(SevInfo, AnaInfo, "f", "one"))
	b := NewBag(2)
	b.Add(New(SevInfo, AnaInfo, "g", "two"))
	b.Add(New(SevInfo, AnaInfo, "h", "three"))
	a.Merge(b)
	assert.Equal(t, 3, a.Len())
	assert.Equal(t, uint16(3), a.Cap())
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(4)
	r := NewBagReporter(bag)
	b := ReportWarning(r, CallRecursive, "p", "p calls itself").WithNote("q", "through q")
	b.Emit()
	b.Emit()
	require.Equal(t, 1, bag.Len())
	d := bag.Items()[0]
	assert.Equal(t, CallRecursive, d.Code)
	assert.Equal(t, []Note{{Func: "q", Msg: "through q"}}, d.Notes)

	var nilBuilder *ReportBuilder
	assert.Nil(t, nilBuilder.WithNote("x", "y"))
	nilBuilder.Emit()
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(4)
	r := NewDedupReporter(NewBagReporter(bag))
	r.Report(AnaNotFlattened, SevWarning, "f", "same", nil)
	r.Report(AnaNotFlattened, SevWarning, "f", "same", nil)
	r.Report(AnaNotFlattened, SevWarning, "g", "same", nil)
	assert.Equal(t, 2, bag.Len())
}

func TestCodeStrings(t *testing.T) {
	assert.Equal(t, "ANA1001", AnaNotFlattened.ID())
	assert.Equal(t, "CAL2001", CallUnreachable.ID())
	assert.Equal(t, "IRF3001", IRDecodeError.ID())
	assert.Equal(t, "E0000", UnknownCode.ID())
	assert.Equal(t, "[ANA1002]: Write of a blocked tensor", AnaBlockedWrite.String())
	assert.Equal(t, "Unknown error", Code(999).Title())
}

func TestParseSeverity(t *testing.T) {
	s, err := ParseSeverity("Warning")
	require.NoError(t, err)
	assert.Equal(t, SevWarning, s)
	_, err = ParseSeverity("fatal")
	assert.Error(t, err)
}

func TestPrettyWithoutColor(t *testing.T) {
	bag := NewBag(2)
	bag.Add(NewError(AnaIndexVarInvalid, "main", "bad binding").WithNote("helper", "here"))
	bag.Add(New(SevWarning, CallUnreachable, "", "orphan"))

	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, bag, PrettyOpts{Notes: true}))
	want := "error[ANA1003] in main: bad binding\n" +
		"  note in helper: here\n" +
		"warning[CAL2001]: orphan\n"
	assert.Equal(t, want, buf.String())
}

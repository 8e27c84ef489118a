package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// Index expression analysis
	AnaInfo             Code = 1000
	AnaNotFlattened     Code = 1001
	AnaBlockedWrite     Code = 1002
	AnaIndexVarInvalid  Code = 1003
	AnaReductionInWrite Code = 1004
	AnaFreeVarOutside   Code = 1005

	// Call graph
	CallInfo          Code = 2000
	CallUnreachable   Code = 2001
	CallRecursive     Code = 2002
	CallMissingEntry  Code = 2003
	CallForeignCallee Code = 2004

	// IR file loading
	IRInfo          Code = 3000
	IRDecodeError   Code = 3001
	IRUnknownSymbol Code = 3002
	IRBadShape      Code = 3003
)

var codeDescription = map[Code]string{
	UnknownCode:         "Unknown error",
	AnaInfo:             "Analysis information",
	AnaNotFlattened:     "Statement is not flattened",
	AnaBlockedWrite:     "Write of a blocked tensor",
	AnaIndexVarInvalid:  "Invalid index variable binding",
	AnaReductionInWrite: "Reduction variable outside an index expression",
	AnaFreeVarOutside:   "Free index variable outside an index expression",
	CallInfo:            "Call graph information",
	CallUnreachable:     "Function is unreachable from the entry points",
	CallRecursive:       "Function is recursive",
	CallMissingEntry:    "Entry point not found",
	CallForeignCallee:   "Callee is not part of the program",
	IRInfo:              "IR file information",
	IRDecodeError:       "IR file cannot be decoded",
	IRUnknownSymbol:     "IR file references an unknown symbol",
	IRBadShape:          "IR file has an invalid shape",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("ANA%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("CAL%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("IRF%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// ParseCode maps an ID such as "ANA1001" back to its Code.
func ParseCode(id string) (Code, bool) {
	for c := range codeDescription {
		if c != UnknownCode && c.ID() == id {
			return c, true
		}
	}
	return UnknownCode, false
}

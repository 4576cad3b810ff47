package terminfo

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
)

// Safety caps applied to header counts before any allocation is sized from
// them, so a corrupt or hostile blob cannot force a huge allocation.
const (
	maxNamesLen    = 4096
	maxBoolsLen    = 512
	maxNumbersLen  = 512
	maxStringsLen  = 512
	maxStringTable = 65536
)

const (
	magicLegacy = 0o432 // 16-bit number section
	magicExtNum = 542   // 32-bit number section
)

// ParseError identifies which stage of terminfo decoding failed.
type ParseErrorKind int

const (
	InvalidMagic ParseErrorKind = iota
	TruncatedData
	InvalidHeader
	InvalidOffset
)

func (k ParseErrorKind) String() string {
	switch k {
	case InvalidMagic:
		return "invalid magic"
	case TruncatedData:
		return "truncated data"
	case InvalidHeader:
		return "invalid header"
	case InvalidOffset:
		return "invalid offset"
	default:
		return "unknown parse error"
	}
}

// ParseError wraps a ParseErrorKind with positional context.
type ParseError struct {
	Kind ParseErrorKind
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Msg == "" {
		return "terminfo: " + e.Kind.String()
	}
	return fmt.Sprintf("terminfo: %s: %s", e.Kind, e.Msg)
}

func parseErr(kind ParseErrorKind, msg string) error {
	return &ParseError{Kind: kind, Msg: msg}
}

// Capabilities is a decoded terminfo entry: a closed set of named string
// capabilities. Boolean and numeric sections are read past but not
// retained — this core has no use for them beyond validating section sizes.
type Capabilities map[string]string

const headerSize = 12

// Parse decodes a compiled terminfo binary blob into a name->escape-string
// capability table, per the 12-byte-header / bool-section / number-section /
// string-section / string-table layout of the classic ncurses format.
func Parse(data []byte) (Capabilities, error) {
	if len(data) < headerSize {
		return nil, parseErr(TruncatedData, "shorter than header")
	}

	magic := int16(binary.LittleEndian.Uint16(data[0:2]))
	namesLen := int(int16(binary.LittleEndian.Uint16(data[2:4])))
	boolsLen := int(int16(binary.LittleEndian.Uint16(data[4:6])))
	numbersCount := int(int16(binary.LittleEndian.Uint16(data[6:8])))
	stringsCount := int(int16(binary.LittleEndian.Uint16(data[8:10])))
	stringTableSize := int(int16(binary.LittleEndian.Uint16(data[10:12])))

	var numberWidth int
	switch magic {
	case magicLegacy:
		numberWidth = 2
	case magicExtNum:
		numberWidth = 4
	default:
		return nil, parseErr(InvalidMagic, fmt.Sprintf("got %#o", uint16(magic)))
	}

	if namesLen < 0 || boolsLen < 0 || numbersCount < 0 || stringsCount < 0 || stringTableSize < 0 {
		return nil, parseErr(InvalidHeader, "negative count")
	}
	if namesLen > maxNamesLen || boolsLen > maxBoolsLen || numbersCount > maxNumbersLen ||
		stringsCount > maxStringsLen || stringTableSize > maxStringTable {
		return nil, parseErr(InvalidHeader, "count exceeds safety cap")
	}

	off := headerSize + namesLen
	if (namesLen+boolsLen)%2 != 0 {
		off += boolsLen + 1
	} else {
		off += boolsLen
	}

	numbersSize := numbersCount * numberWidth
	stringsSize := stringsCount * 2

	total := off + numbersSize + stringsSize + stringTableSize
	if total > len(data) {
		return nil, parseErr(TruncatedData, fmt.Sprintf("need %d bytes, have %d", total, len(data)))
	}

	off += numbersSize // skip the numbers section; this core does not need it

	stringOffsets := data[off : off+stringsSize]
	off += stringsSize
	table := data[off : off+stringTableSize]

	caps := make(Capabilities, stringsCount)
	for i := 0; i < stringsCount; i++ {
		if i >= len(stdStringNames) {
			break // beyond the closed 414-name table: extended caps, not handled here
		}
		raw := int16(binary.LittleEndian.Uint16(stringOffsets[i*2 : i*2+2]))
		if raw == -1 {
			continue
		}
		start := int(raw)
		if start < 0 || start >= len(table) {
			return nil, parseErr(InvalidOffset, fmt.Sprintf("capability %d offset %d", i, start))
		}
		end := start
		for end < len(table) && table[end] != 0 {
			end++
		}
		if end >= len(table) {
			return nil, parseErr(InvalidOffset, fmt.Sprintf("capability %d unterminated", i))
		}
		caps[stdStringNames[i]] = string(table[start:end])
	}

	return caps, nil
}

// SafeParse wraps Parse and converts any failure into an absent table
// instead of an error, per the "safe wrapper" required by spec §4.2 for
// callers that would rather fall back to a built-in table than fail outright.
func SafeParse(data []byte) Capabilities {
	caps, err := Parse(data)
	if err != nil {
		return Capabilities{}
	}
	return caps
}

package terminfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTparmArithmetic(t *testing.T) {
	assert.Equal(t, "7", Tparm("%p1%p2%+%d", 3, 4))
	assert.Equal(t, "3", Tparm("%{10}%{3}%/%d"))
	assert.Equal(t, "0", Tparm("%{10}%{0}%/%d"))
}

func TestTparmCursorPositioning(t *testing.T) {
	assert.Equal(t, "\x1b[1;1H", Tparm("\x1b[%i%p1%d;%p2%dH", 0, 0))
	assert.Equal(t, "\x1b[3;5H", Tparm("\x1b[%i%p1%d;%p2%dH", 2, 4))
}

func TestTparmLiteralPercent(t *testing.T) {
	assert.Equal(t, "100%", Tparm("100%%"))
}

func TestTparmConditional(t *testing.T) {
	// if p1 != 0, output "yes", else "no"
	tmpl := "%p1%?%t" + "yes" + "%e" + "no" + "%;"
	assert.Equal(t, "yes", Tparm(tmpl, 1))
	assert.Equal(t, "no", Tparm(tmpl, 0))
}

func TestTparmConditionalWithoutElse(t *testing.T) {
	tmpl := "%p1%?%t" + "X" + "%;" + "tail"
	assert.Equal(t, "Xtail", Tparm(tmpl, 1))
	assert.Equal(t, "tail", Tparm(tmpl, 0))
}

func TestTparmNestedConditional(t *testing.T) {
	tmpl := "%p1%?%t" + "%p2%?%t" + "AB" + "%e" + "AC" + "%;" + "%e" + "Z" + "%;"
	assert.Equal(t, "AB", Tparm(tmpl, 1, 1))
	assert.Equal(t, "AC", Tparm(tmpl, 1, 0))
	assert.Equal(t, "Z", Tparm(tmpl, 0, 0))
}

func TestTparmStaticVariablesPersistAcrossCalls(t *testing.T) {
	ResetStaticVars()
	Tparm("%{42}%PA")
	assert.Equal(t, "42", Tparm("%gA%d"))
	ResetStaticVars()
	assert.Equal(t, "0", Tparm("%gA%d"))
}

func TestTparmDynamicVariablesDoNotPersist(t *testing.T) {
	Tparm("%{9}%Pa") // stores 9 in dynamic variable a for this call only
	assert.Equal(t, "0", Tparm("%ga%d"))
}

func TestTparmUnknownEscapeSkippedSilently(t *testing.T) {
	assert.NotPanics(t, func() {
		Tparm("%Q%d")
	})
}

func TestTparmNeverPanicsOnMalformedTemplate(t *testing.T) {
	assert.NotPanics(t, func() {
		Tparm("%?%t%p1%d")
		Tparm("%{")
		Tparm("%p")
		Tparm("%'")
	})
}

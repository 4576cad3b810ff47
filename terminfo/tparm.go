package terminfo

import (
	"strconv"
	"sync"
)

// staticVars holds the 26 uppercase tparm variables, shared process-wide
// across every call, per spec §3/§9. Mutated only by %P<UPPERCASE> ops.
var (
	staticVarsMu sync.Mutex
	staticVars   [26]int64
)

// ResetStaticVars clears the process-wide static variable table. Exposed
// for tests that need a clean slate between cases.
func ResetStaticVars() {
	staticVarsMu.Lock()
	defer staticVarsMu.Unlock()
	staticVars = [26]int64{}
}

// state is one tparm call's scratch space: the operand stack, the output
// buffer, and the nine positional parameters plus 26 call-local dynamic
// variables, per spec §3.
type state struct {
	stack   []int64
	out     []byte
	params  [9]int64
	dynamic [26]int64
}

func (s *state) push(v int64) { s.stack = append(s.stack, v) }

func (s *state) pop() int64 {
	if len(s.stack) == 0 {
		return 0
	}
	v := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return v
}

// Tparm evaluates a terminfo parametrized capability template against up to
// nine parameters, per the stack-machine rules of spec §4.3. It never
// panics: unknown escapes are skipped silently, and the cursor always
// advances, so it terminates on any finite input.
func Tparm(template string, params ...int64) string {
	s := &state{}
	for i := 0; i < len(params) && i < 9; i++ {
		s.params[i] = params[i]
	}

	run(template, s)
	return string(s.out)
}

// run interprets template from the start, writing to s.out. It is used both
// for the top-level call and recursively for the taken branch of a %?
// conditional.
func run(template string, s *state) {
	i := 0
	n := len(template)
	for i < n {
		c := template[i]
		if c != '%' {
			s.out = append(s.out, c)
			i++
			continue
		}
		i++ // consume '%'
		if i >= n {
			break
		}
		op := template[i]
		switch op {
		case '%':
			s.out = append(s.out, '%')
			i++

		case 'p':
			i++
			if i < n && template[i] >= '1' && template[i] <= '9' {
				s.push(s.params[template[i]-'1'])
				i++
			}

		case 'P':
			i++
			if i < n {
				idx := varIndex(template[i])
				v := s.pop()
				if isUpper(template[i]) {
					staticVarsMu.Lock()
					staticVars[idx] = v
					staticVarsMu.Unlock()
				} else {
					s.dynamic[idx] = v
				}
				i++
			}

		case 'g':
			i++
			if i < n {
				idx := varIndex(template[i])
				if isUpper(template[i]) {
					staticVarsMu.Lock()
					s.push(staticVars[idx])
					staticVarsMu.Unlock()
				} else {
					s.push(s.dynamic[idx])
				}
				i++
			}

		case '{':
			i++
			start := i
			for i < n && template[i] != '}' {
				i++
			}
			v, _ := strconv.ParseInt(template[start:i], 10, 64)
			s.push(v)
			if i < n {
				i++ // consume '}'
			}

		case '\'':
			i++
			if i < n {
				s.push(int64(template[i]))
				i++
				if i < n && template[i] == '\'' {
					i++
				}
			}

		case 'd':
			s.out = append(s.out, strconv.FormatInt(s.pop(), 10)...)
			i++

		case 's':
			s.out = append(s.out, byte(s.pop()))
			i++

		case 'c':
			s.out = append(s.out, byte(s.pop()))
			i++

		case '+', '-', '*', '/', 'm', '&', '|', '^', '=', '<', '>', 'A', 'O':
			right := s.pop()
			left := s.pop()
			s.push(binOp(op, left, right))
			i++

		case '!':
			v := s.pop()
			s.push(boolToInt(v == 0))
			i++

		case '~':
			s.push(^s.pop())
			i++

		case 'l':
			// length-of-pop-as-string: tparm strings only ever push
			// numbers, so this measures the decimal/char width of the
			// popped value, matching what a string-producing pop would
			// have yielded.
			v := s.pop()
			s.push(int64(len(strconv.FormatInt(v, 10))))
			i++

		case 'i':
			s.params[0]++
			s.params[1]++
			i++

		case '?':
			i++

		case 't':
			cond := s.pop()
			i++
			thenEnd, hasElse, elseEnd := scanConditional(template, i)
			if cond != 0 {
				run(template[i:thenEnd], s)
			} else if hasElse {
				run(template[thenEnd+2:elseEnd], s)
			}
			i = elseEnd + 2

		default:
			// Unknown escape: skip the percent-op byte silently, per the
			// "never panics on malformed templates" guarantee.
			i++
		}
	}
}

// scanConditional finds, starting just after a %t, the index of the
// matching %e (if any) and %; for the current conditional, accounting for
// nested %? ... %; blocks via a depth counter. It returns the offset of
// the %e (or of the %; if there is no %e) as thenEnd, whether an %e was
// found, and the offset of the %; as elseEnd.
func scanConditional(template string, start int) (thenEnd int, hasElse bool, elseEnd int) {
	depth := 0
	i := start
	n := len(template)
	thenEnd = -1
	for i < n {
		if template[i] != '%' || i+1 >= n {
			i++
			continue
		}
		switch template[i+1] {
		case '?':
			depth++
			i += 2
		case ';':
			if depth == 0 {
				return thenOr(thenEnd, i), hasElse, i
			}
			depth--
			i += 2
		case 'e':
			if depth == 0 && thenEnd == -1 {
				thenEnd = i
				hasElse = true
			}
			i += 2
		default:
			i += 2
		}
	}
	// Malformed template with no terminating %;: treat the remainder as
	// the then-branch and stop there, per the never-panic guarantee.
	return thenOr(thenEnd, n), hasElse, n
}

func thenOr(thenEnd, fallback int) int {
	if thenEnd == -1 {
		return fallback
	}
	return thenEnd
}

func varIndex(c byte) int {
	if c >= 'a' && c <= 'z' {
		return int(c - 'a')
	}
	if c >= 'A' && c <= 'Z' {
		return int(c - 'A')
	}
	return 0
}

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func binOp(op byte, left, right int64) int64 {
	switch op {
	case '+':
		return left + right
	case '-':
		return left - right
	case '*':
		return left * right
	case '/':
		if right == 0 {
			return 0
		}
		return left / right
	case 'm':
		if right == 0 {
			return 0
		}
		return left % right
	case '&':
		return left & right
	case '|':
		return left | right
	case '^':
		return left ^ right
	case '=':
		return boolToInt(left == right)
	case '<':
		return boolToInt(left < right)
	case '>':
		return boolToInt(left > right)
	case 'A':
		return boolToInt(left != 0 && right != 0)
	case 'O':
		return boolToInt(left != 0 || right != 0)
	}
	return 0
}

package sketch

import "strings"

// Expressions binds textual expressions to constraints, keyed by the
// constraint's Tag. Evaluating them is up to the host.
type Expressions interface {
	// Expression returns the expression bound to tag.
	Expression(tag int64) (string, bool)
	SetExpression(tag int64, expr string)
	ClearExpression(tag int64)
}

// MemoryExpressions keeps expressions in a map. Stored expressions are
// canonicalized by dropping parentheses that wrap the whole expression.
type MemoryExpressions struct {
	m map[int64]string
}

var _ Expressions = (*MemoryExpressions)(nil)

func NewMemoryExpressions() *MemoryExpressions {
	return &MemoryExpressions{m: make(map[int64]string)}
}

func (e *MemoryExpressions) Expression(tag int64) (string, bool) {
	s, ok := e.m[tag]
	return s, ok
}

func (e *MemoryExpressions) SetExpression(tag int64, expr string) {
	e.m[tag] = canonicalExpression(expr)
}

func (e *MemoryExpressions) ClearExpression(tag int64) {
	delete(e.m, tag)
}

// Len returns the number of bound expressions.
func (e *MemoryExpressions) Len() int {
	return len(e.m)
}

func canonicalExpression(expr string) string {
	expr = strings.TrimSpace(expr)
	for len(expr) >= 2 && expr[0] == '(' && closingParen(expr) == len(expr)-1 {
		expr = strings.TrimSpace(expr[1 : len(expr)-1])
	}
	return expr
}

// closingParen returns the index of the parenthesis closing the one that
// opens s, or -1.
func closingParen(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// Package taint provides the per-function-scope taint tracker for secureai.
// It classifies identifiers as parameter-derived, request-derived, or
// untainted using a single lexical pass over the function body.
//
// This is intentionally not a dataflow analysis: propagation follows only
// single-assignment chains in declaration order, with no fixed-point
// iteration. An identifier whose source declaration appears later in the
// file stays untainted. That precision trade-off is part of the detection
// contract and must not be "fixed" silently.
package taint

import (
	"sort"
	"strings"

	secureai "github.com/secureai/secureai"
)

// Class labels how an identifier became tainted.
type Class int

// Taint classes. Untainted is the zero value.
const (
	Untainted Class = iota
	// Parameter marks identifiers bound to (or derived from) a function
	// parameter name.
	Parameter
	// RequestDerived marks identifiers derived from a property access
	// rooted at a request-like object (req, request, ctx.request).
	RequestDerived
)

// requestRoots are the recognized request-like parameter names.
var requestRoots = map[string]struct{}{
	"req":     {},
	"request": {},
}

// Scope is the read-only taint classification for one function body.
// Constructed once per analyzed function, discarded after that function's
// findings are collected.
type Scope struct {
	classes map[string]Class
}

// ClassOf returns an identifier's taint class.
func (s *Scope) ClassOf(name string) Class {
	if s == nil {
		return Untainted
	}
	return s.classes[name]
}

// Tainted reports whether the identifier carries any taint.
func (s *Scope) Tainted(name string) bool {
	return s.ClassOf(name) != Untainted
}

// Empty reports whether nothing in the scope is tainted.
func (s *Scope) Empty() bool {
	return s == nil || len(s.classes) == 0
}

// Names returns the tainted identifier names in sorted order.
func (s *Scope) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.classes))
	for name := range s.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Tracker computes taint scopes for function-like nodes.
type Tracker struct{}

// NewTracker builds a Tracker.
func NewTracker() *Tracker { return &Tracker{} }

// ScopeOf analyzes a function-like node and returns its taint scope.
// Only functions with at least one parameter are analyzed; anything else
// yields an empty scope.
func (t *Tracker) ScopeOf(fn *secureai.Node) *Scope {
	scope := &Scope{classes: map[string]Class{}}
	if fn == nil || fn.Kind() != secureai.KindFunctionLike {
		return scope
	}

	params := fn.ParamNames()
	if len(params) == 0 {
		return scope
	}
	for _, name := range params {
		scope.classes[name] = Parameter
	}

	body := fn.ChildByField("body")
	if body == nil {
		return scope
	}

	// Single pass in file order. Declarations inside nested functions
	// belong to their own scopes and are pruned.
	body.Walk(func(n *secureai.Node) bool {
		if n.Kind() == secureai.KindFunctionLike {
			return false
		}
		if n.Kind() == secureai.KindVariableDecl {
			t.propagate(scope, n)
		}
		return true
	})

	return scope
}

// propagate classifies one variable declarator against the scope built so
// far. Later declarations referencing this name will inherit its class;
// earlier ones already missed it.
func (t *Tracker) propagate(scope *Scope, decl *secureai.Node) {
	name := decl.ChildByField("name")
	if name == nil || name.Kind() != secureai.KindIdentifier {
		// Destructuring declarators are out of scope for the tracker.
		return
	}
	value := decl.ChildByField("value")
	if value == nil {
		return
	}

	switch value.Kind() {
	case secureai.KindIdentifier:
		// Bare reference: inherit whichever class the source had.
		if class := scope.classes[value.Text()]; class != Untainted {
			scope.classes[name.Text()] = class
		}
	case secureai.KindMemberAccess:
		if isRequestAccess(value) {
			scope.classes[name.Text()] = RequestDerived
		}
	}
}

// isRequestAccess reports whether a property access is rooted at a
// request-like object: req.*, request.*, or ctx.request.*.
func isRequestAccess(n *secureai.Node) bool {
	root := n.RootIdentifier()
	if _, ok := requestRoots[root]; ok {
		return true
	}
	return root == "ctx" && strings.HasPrefix(n.Text(), "ctx.request")
}

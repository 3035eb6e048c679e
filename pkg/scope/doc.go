// Package scope propagates layered configuration through a rendering tree.
//
// A Context holds process-wide defaults, fixed when the Context is created.
// Rendering starts from Context.Root and threads a *Scope explicitly through
// the call chain. A Scope never changes after it is built: Provide returns a
// new child whose effective configuration is the parent's overlaid with the
// given overrides, and the parent keeps its own. Leaving a subtree therefore
// restores the enclosing configuration without any cleanup, and independent
// branches (including branches rendered on different goroutines) never see
// each other's overrides.
//
// Overrides come in two forms that are equivalent for a given parent:
//
//	child := root.Provide(scope.Literal(scope.Map[int]{"b": 3}))
//	inner := child.Provide(scope.Transform(func(cur scope.Map[int]) scope.Map[int] {
//	    return scope.Map[int]{"a": cur["a"] + 10}
//	}))
//
//	inner.Read() // map[a:11 b:3]
//	root.Read()  // the defaults, unchanged
//
// Provider nodes that are declared once and rendered under many parents can
// use a Memo to reuse the child Scope derived for each parent.
package scope

//go:build !release

package debug

// Assert panics with info if fn returns false. It compiles to a no-op with
// the release build tag.
func Assert(info string, fn func() bool) {
	if !fn() {
		panic("assertion failed: " + info)
	}
}

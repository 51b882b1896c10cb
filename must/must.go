// Package must unwraps results whose error cannot happen, such as
// setting a non-nil key in a map, by panicking if it does.
package must

// Must panics if err is not nil.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

// Must2 returns p1 if err is nil, and panics otherwise.
//
//	v := must.Must2(m.Get(k))
func Must2[T1 any](p1 T1, err error) T1 {
	if err != nil {
		panic(err)
	}
	return p1
}

// Must3 is Must2 for two results.
//
//	prev, ok := must.Must3(m.Set(k, v))
func Must3[T1, T2 any](p1 T1, p2 T2, err error) (T1, T2) {
	if err != nil {
		panic(err)
	}
	return p1, p2
}

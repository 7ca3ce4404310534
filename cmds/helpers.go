package cmds

// Var defines name (and aliases) to set the returned value, and name+"." to reset it.
func Var[T any](name string, aliases ...string) *T {
	var value T

	// set
	Define(name, Func(func(v T) {
		value = v
	}).Alias(aliases...))

	// set zero
	var zero T
	Define(name+".", Func(func() {
		value = zero
	}))

	return &value
}

func Switch(name string, aliases ...string) *bool {
	var value bool

	// set true
	Define(name, Func(func() {
		value = true
	}).Alias(aliases...))

	// set false
	Define("!"+name, Func(func() {
		value = false
	}))

	return &value
}

func Collect[T any](name string) *[]T {
	var value []T
	// append
	Define(name, Func(func(v T) {
		value = append(value, v)
	}))
	return &value
}

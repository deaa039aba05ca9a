package templating

// list returns a slice containing all the arguments passed to it.
func list(args ...any) []any {
	return args
}

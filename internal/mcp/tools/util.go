package tools

// boolOrDefault resolves an optional boolean input to its schema default.
func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

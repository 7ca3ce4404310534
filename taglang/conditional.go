package taglang

// EvalGuards reports whether every guard holds, stopping at the first that does not.
func EvalGuards(ns Getter, guards []Guard) (bool, error) {
	for _, guard := range guards {
		entry, ok := ns.Get(guard.Name)
		if !ok {
			if !guard.Negative {
				return false, nil
			}
			continue
		}

		switch entry := entry.(type) {
		case Tag:
			if entry.Enabled == guard.Negative {
				return false, nil
			}
		case Variable:
			if guard.Negative {
				return false, nil
			}
		default:
			return false, newError(KindInvalidConditionalTarget, guard.Location,
				"cannot use %s identifier in tag conditional", kindOf(entry))
		}
	}
	return true, nil
}

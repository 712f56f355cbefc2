package normalize

// unwrapList digs the record list out of whatever envelope upstream chose:
// a bare array, one of the known wrapper keys, or (failing those) the first
// property whose value is an array. Returns nil when no array is found.
func unwrapList(payload any, wrapperKeys []string) []any {
	if list, ok := payload.([]any); ok {
		return list
	}

	obj, ok := payload.(map[string]any)
	if !ok {
		return nil
	}

	for _, key := range wrapperKeys {
		if list, ok := obj[key].([]any); ok {
			return list
		}
	}

	for _, value := range obj {
		if list, ok := value.([]any); ok {
			return list
		}
	}

	return nil
}

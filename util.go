package termvk

const end = "\x00"

// safeString null-terminates s for the C side of the bindings.
func safeString(s string) string {
	if len(s) == 0 {
		return end
	}
	if s[len(s)-1] != end[0] {
		return s + end
	}
	return s
}

func safeStrings(list []string) []string {
	out := make([]string, len(list))
	for i := range list {
		out[i] = safeString(list[i])
	}
	return out
}

// appendUnique appends the names not already in list, keeping order.
func appendUnique(list []string, names ...string) []string {
	seen := make(map[string]bool, len(list)+len(names))
	for _, n := range list {
		seen[n] = true
	}
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		list = append(list, n)
	}
	return list
}

package depot

// texts is the process-wide depot of interned strings.
var texts Depot[string, string]

// Text returns the canonical eternal pointer for s.
//
// Equal strings always yield the same pointer, so holders of interned text
// can be compared by pointer.
func Text(s string) *string {
	return texts.Intern(s, func() string { return s })
}

// TextStats returns statistics about the text depot. Unlike Depot.Stats it
// includes the string bytes.
func TextStats() (unique int, approxBytes int64) {
	unique, approxBytes = texts.Stats()
	texts.Range(func(k string, _ *string) bool {
		approxBytes += int64(len(k))
		return true
	})
	return unique, approxBytes
}

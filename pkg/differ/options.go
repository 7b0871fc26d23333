package differ

// Option is a functional option for configuring Differ.
type Option func(*differ)

// WithIgnoredFields sets fields to ignore during comparison, by Go field
// name ("Notes", "Website", ...).
func WithIgnoredFields(fields ...string) Option {
	return func(d *differ) {
		for _, field := range fields {
			d.ignoreFields[field] = true
		}
	}
}

// WithValueWidth truncates old and new values in field changes to n runes.
// Zero keeps values whole.
func WithValueWidth(n int) Option {
	return func(d *differ) {
		d.valueWidth = n
	}
}

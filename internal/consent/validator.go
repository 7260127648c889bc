package consent

// Result is the outcome of matching an observed cookie snapshot against an
// expectation. Valid holds iff every required cookie was found.
// FoundOptional/TotalOptional are informational coverage counters and never
// gate Valid.
type Result struct {
	Valid           bool     `json:"valid"`
	MissingRequired []string `json:"missing_required,omitempty"`
	FoundOptional   int      `json:"found_optional"`
	TotalOptional   int      `json:"total_optional"`
}

// Validate compares an observed cookie snapshot against an expectation.
// Membership is exact "name@domain" equality. MissingRequired preserves the
// declaration order of exp.Required so that failure messages are
// deterministic regardless of snapshot ordering. Pure function of its inputs.
func Validate(observed []Cookie, exp Expectation) Result {
	present := make(map[string]struct{}, len(observed))
	for _, c := range observed {
		present[c.Key()] = struct{}{}
	}

	var missing []string
	for _, key := range exp.Required {
		if _, ok := present[key]; !ok {
			missing = append(missing, key)
		}
	}

	found := 0
	for _, key := range exp.Optional {
		if _, ok := present[key]; ok {
			found++
		}
	}

	return Result{
		Valid:           len(missing) == 0,
		MissingRequired: missing,
		FoundOptional:   found,
		TotalOptional:   len(exp.Optional),
	}
}

package area

// Options tune the matcher.
type Options struct {
	// Size is the number of lines in an area. Even values are bumped to
	// the next odd value.
	Size int
	// Accuracy is the number of candidate lines kept per operation.
	Accuracy int
}

// DefaultOptions returns the settings used when none are configured.
func DefaultOptions() Options {
	return Options{Size: 5, Accuracy: 10}
}

// Normalize clamps the options to usable values.
func (o Options) Normalize() Options {
	if o.Size < 1 {
		o.Size = 1
	}
	if o.Size%2 == 0 {
		o.Size++
	}
	if o.Accuracy < 1 {
		o.Accuracy = 1
	}
	return o
}

// Extract returns the size lines centred on center. Positions outside lines
// are blank, as if the file were padded at both ends.
func Extract(lines []string, center, size int) []string {
	half := size / 2
	out := make([]string, size)
	for k := range out {
		if i := center - half + k; i >= 0 && i < len(lines) {
			out[k] = lines[i]
		}
	}
	return out
}

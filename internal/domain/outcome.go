package domain

// FetchOutcome is the tagged result of one load: either Images or Err is meaningful
type FetchOutcome struct {
	Images []Image
	Err    error
}

// Succeeded builds a successful outcome
func Succeeded(images []Image) FetchOutcome {
	return FetchOutcome{Images: images}
}

// Failed builds a failed outcome
func Failed(err error) FetchOutcome {
	return FetchOutcome{Err: err}
}

// OK reports whether the fetch succeeded
func (o FetchOutcome) OK() bool {
	return o.Err == nil
}

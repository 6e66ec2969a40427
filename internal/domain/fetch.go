package domain

// FetchResult is the outcome of one feed retrieval. Exactly one of
// Collection and Err is set.
type FetchResult struct {
	Collection *FeatureCollection
	Err        error
}

// OK reports whether the fetch succeeded.
func (r FetchResult) OK() bool {
	return r.Err == nil && r.Collection != nil
}

// FetchFailed wraps err as a failed FetchResult.
func FetchFailed(err error) FetchResult {
	return FetchResult{Err: err}
}

package service

func deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

// assign copies *src into *dst when src is set.
func assign[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// assignOptional replaces a nullable column when src is set.
func assignOptional[T any](dst **T, src *T) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

package workspace

// NewResolverWithLookPath creates a Resolver with a custom PATH lookup.
func NewResolverWithLookPath(lookPath func(string) (string, error)) *Resolver {
	return &Resolver{lookPath: lookPath}
}

package loader

// Format is the decoder boundary: a name for the filename suffixes it
// claims, and a way to turn raw bytes into a typed value. Extension lists
// are authoritative for the Loader's probe order — register formats in
// the order they should be tried when more than one candidate file
// exists.
type Format interface {
	// Extensions lists the filename suffixes this format claims, without
	// the leading dot, e.g. []string{"yaml", "yml"}.
	Extensions() []string
	// Parse decodes input into dst, a pointer to the target type.
	Parse(input []byte, dst any) error
}

// PreProcessor is an optional hook a loaded value may implement to
// normalize itself after parsing but before validation.
type PreProcessor interface {
	PreProcess()
}

// ContextSetter is an optional hook a loaded value may implement to
// receive the key or path it was loaded from.
type ContextSetter interface {
	SetContext(ctx string)
}

// Validator is an optional hook a loaded value may implement to reject
// semantically invalid configuration after parsing. When a value does not
// implement it, validation always succeeds.
type Validator interface {
	ValidateConfig() error
}

// runHooks applies PreProcess, SetContext, then ValidateConfig to v, in
// that order, exactly as the Loader's pipeline requires.
func runHooks(v any, ctx string) error {
	if pp, ok := v.(PreProcessor); ok {
		pp.PreProcess()
	}
	if cs, ok := v.(ContextSetter); ok {
		cs.SetContext(ctx)
	}
	if val, ok := v.(Validator); ok {
		if err := val.ValidateConfig(); err != nil {
			return NewErrValidation(ctx, err)
		}
	}
	return nil
}

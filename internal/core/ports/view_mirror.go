package ports

// ViewMirror copies rendered view fields to an external store so other
// processes can read the latest state. Implementations must not block the
// caller for long and must swallow their own errors.
type ViewMirror interface {
	Mirror(fields map[string]any)
}

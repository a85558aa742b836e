package ipl

// UnknownModelName is emitted whenever a model ID has no known display name.
const UnknownModelName = "unknown"

// ModelResolver maps a model ID to a display name. Implementations must
// always return a usable token; absence is expressed through a placeholder,
// never an error.
type ModelResolver interface {
	ModelName(id int32) string
}

// TableResolver resolves names through a static lookup table, falling back to
// UnknownModelName for IDs the table does not carry. A nil TableResolver is
// valid and resolves everything to the placeholder.
type TableResolver map[int32]string

func (t TableResolver) ModelName(id int32) string {
	if name, ok := t[id]; ok {
		return name
	}
	return UnknownModelName
}

// PlaceholderResolver resolves every model ID to the same fixed token,
// mirroring the legacy converter variant that never performed lookups.
type PlaceholderResolver string

func (p PlaceholderResolver) ModelName(int32) string { return string(p) }

package alert

// Adapter recognizes and parses one family of raw alert payloads. Adapters
// are side-effect free and sibling implementations — no adapter depends on
// another.
type Adapter interface {
	SourceType() string
	CanHandle(raw []byte) bool
	ParseAlert(raw []byte) (*Alert, error)
}

// Registry holds adapters in registration order and routes a raw payload to
// the first one that claims it. No fallthrough: once an adapter claims a
// payload, its result (including a nil "skip this event" result) is final.
type Registry struct {
	adapters []Adapter
}

// NewRegistry builds a registry from adapters in priority order.
func NewRegistry(adapters ...Adapter) *Registry {
	return &Registry{adapters: adapters}
}

// Register appends an adapter to the end of the priority list.
func (r *Registry) Register(a Adapter) {
	r.adapters = append(r.adapters, a)
}

// Parse routes raw to the first adapter whose CanHandle returns true. It
// returns (nil, nil) when the claiming adapter explicitly signals a
// skippable event (e.g. an OK/recovery transition), and a *ParseError when
// no adapter claims the payload or the claiming adapter fails.
func (r *Registry) Parse(raw []byte) (*Alert, error) {
	for _, a := range r.adapters {
		if !a.CanHandle(raw) {
			continue
		}
		alrt, err := a.ParseAlert(raw)
		if err != nil {
			return nil, newParseError(a.SourceType(), err.Error(), err)
		}
		return alrt, nil
	}
	return nil, newParseError("", "no adapter claimed the payload", nil)
}

package nn

import "fmt"

// Registry holds the four role-tagged networks a trainer owns. It
// replaces the four role-indexed global vectors of the original source
// with a single struct and typed field access.
type Registry struct {
	DqnOnline    *Network
	DqnTarget    *Network
	RndPredictor *Network
	RndTarget    *Network
}

// Get returns the network for role, or an error if role is unknown.
func (r *Registry) Get(role Role) (*Network, error) {
	switch role {
	case RoleDqnOnline:
		return r.DqnOnline, nil
	case RoleDqnTarget:
		return r.DqnTarget, nil
	case RoleRndPredictor:
		return r.RndPredictor, nil
	case RoleRndTarget:
		return r.RndTarget, nil
	default:
		return nil, fmt.Errorf("nn: unknown role %v", role)
	}
}

// Close closes every network's loss log handle.
func (r *Registry) Close() error {
	for _, n := range []*Network{r.DqnOnline, r.DqnTarget, r.RndPredictor, r.RndTarget} {
		if n == nil {
			continue
		}
		if err := n.Close(); err != nil {
			return err
		}
	}
	return nil
}

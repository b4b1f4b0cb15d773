package evaluator

import (
	"fmt"

	"github.com/thomasrohde/eva/pkg/diagnostics"
)

// Arena owns every environment created during a run. Environments live until
// Release drops them all at once.
type Arena struct {
	envs     []*Env
	limit    int
	released bool
}

// NewArena creates an arena. A limit of zero or less means unlimited.
func NewArena(limit int) *Arena {
	return &Arena{limit: limit}
}

// NewEnv allocates an environment. It fails with E_ALLOCATION once the limit is reached.
func (a *Arena) NewEnv(kind EnvKind, name string, parent *Env) (*Env, error) {
	if a.released {
		panic("evaluator: environment allocated from a released arena")
	}
	if a.limit > 0 && len(a.envs) >= a.limit {
		return nil, &RuntimeError{
			Code:    diagnostics.EAllocation,
			Message: fmt.Sprintf("environment limit exceeded (max %d)", a.limit),
		}
	}
	env := newEnv(kind, name, parent)
	a.envs = append(a.envs, env)
	return env, nil
}

// Len returns how many environments have been allocated.
func (a *Arena) Len() int { return len(a.envs) }

// Released reports whether Release has been called.
func (a *Arena) Released() bool { return a.released }

// Release drops all environments.
func (a *Arena) Release() {
	for i := range a.envs {
		a.envs[i] = nil
	}
	a.envs = nil
	a.released = true
}

package dialog

import (
	"fmt"

	"github.com/hugohenrick/commerce-assistant/pkg/logger"
)

// Registry holds the named dialog entry points. It is built once during
// process initialization and passed to the request-handling entry points;
// there is no ambient global registration.
type Registry struct {
	dialogs map[string]Dialog
	logger  logger.Logger
}

// NewRegistry creates an empty dialog registry
func NewRegistry(log logger.Logger) *Registry {
	return &Registry{
		dialogs: make(map[string]Dialog),
		logger:  log,
	}
}

// Register adds a dialog under a name. Registering the same name twice is a
// wiring mistake and panics during startup.
func (r *Registry) Register(name string, d Dialog) {
	if _, exists := r.dialogs[name]; exists {
		panic(fmt.Sprintf("dialog %q registered twice", name))
	}
	r.dialogs[name] = d
	r.logger.Debug("Dialog registered", "dialog", name)
}

// Get returns the dialog registered under a name
func (r *Registry) Get(name string) (Dialog, bool) {
	d, ok := r.dialogs[name]
	return d, ok
}

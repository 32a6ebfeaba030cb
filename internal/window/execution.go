package window

import (
	"errors"
	"log"

	"github.com/j0KZ/K2-controller-design-sub000/internal/actions"
	"github.com/j0KZ/K2-controller-design-sub000/internal/mapping"
	"github.com/j0KZ/K2-controller-design-sub000/internal/notify"
)

// testBinding fires the entry bound to c as if the control was pressed
func (mw *MainWindow) testBinding(c mapping.Control) {
	b, ok := mw.engine.Binding(c)
	if !ok || mw.runner == nil {
		return
	}

	inv := actions.Invocation{
		Type:    b.Entry.Action,
		Name:    b.Entry.Name,
		Params:  b.Entry.Params,
		Value:   127,
		Pressed: true,
	}

	// Fire and forget
	go func() {
		out, err := mw.runner.Execute(inv)
		switch {
		case errors.Is(err, actions.ErrNoHandler):
			mw.status.Notify(inv.Name+" runs in the host integration only", notify.Info)
		case err != nil:
			log.Printf("Action '%s' failed: %v", inv.Name, err)
			mw.status.Notify("Action '"+inv.Name+"' failed: "+err.Error(), notify.Error)
		default:
			if out != "" {
				log.Printf("Action '%s': %s", inv.Name, out)
			}
			mw.status.Notify("Ran "+inv.Name, notify.Success)
		}
	}()
}

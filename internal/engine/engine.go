// Package engine reassigns action bindings between the palette and the
// controls of the device.
//
// Every reassignment follows the same commit protocol: validate, apply the
// writes to the local document, persist the whole document, and on failure
// restore each written slot to its pre-image. Only one reassignment may be
// waiting on the store at a time; the document's dirty flag is the lock.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/j0KZ/K2-controller-design-sub000/internal/actions"
	"github.com/j0KZ/K2-controller-design-sub000/internal/config"
	"github.com/j0KZ/K2-controller-design-sub000/internal/drag"
	"github.com/j0KZ/K2-controller-design-sub000/internal/mapping"
	"github.com/j0KZ/K2-controller-design-sub000/internal/notify"
	"github.com/j0KZ/K2-controller-design-sub000/internal/store"
)

// Selection is the editor's current-control surface
type Selection interface {
	// Current returns the ID of the selected control, empty when none
	Current() string
	Select(c mapping.Control)
	Clear()
}

// Modifiers are the keys held when a drag is dropped
type Modifiers uint8

const (
	// ModCopy copies the source binding instead of moving or swapping it
	ModCopy Modifiers = 1 << iota
)

// Op is the kind of change a reassignment made
type Op int

const (
	OpNone Op = iota
	OpAssign
	OpMove
	OpCopy
	OpSwap
	OpUnassign
)

func (o Op) String() string {
	switch o {
	case OpAssign:
		return "Assigned"
	case OpMove:
		return "Moved"
	case OpCopy:
		return "Copied"
	case OpSwap:
		return "Swapped"
	case OpUnassign:
		return "Cleared"
	default:
		return "None"
	}
}

// Outcome describes a committed reassignment
type Outcome struct {
	Op Op
	// Touched lists the slots written, in write order
	Touched []mapping.Coordinates
}

// Engine owns the client copy of the configuration document and the drag
// session that edits it
type Engine struct {
	store     store.Store
	selection Selection
	notifier  notify.Notifier

	mu      sync.Mutex
	session *drag.Session
	doc     *config.Document
}

// New creates an engine. The session is owned by the engine from here on;
// callers go through the engine's drag methods.
func New(st store.Store, sel Selection, n notify.Notifier, session *drag.Session) *Engine {
	if session == nil {
		session = drag.NewSession()
	}
	return &Engine{
		store:     st,
		selection: sel,
		notifier:  n,
		session:   session,
	}
}

// Load fetches the document from the store, replacing the local copy.
// It is refused while a reassignment is waiting on the store.
func (e *Engine) Load(ctx context.Context) error {
	e.mu.Lock()
	if e.doc != nil && e.doc.Dirty() {
		e.mu.Unlock()
		return ErrPendingChanges
	}
	e.mu.Unlock()

	doc, err := e.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	doc.ClearDirty()

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.doc != nil && e.doc.Dirty() {
		return ErrPendingChanges
	}
	e.doc = doc
	return nil
}

// Loaded reports whether a document is present
func (e *Engine) Loaded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc != nil
}

// Document returns a copy of the local document, nil before Load
func (e *Engine) Document() *config.Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.doc == nil {
		return nil
	}
	return e.doc.Clone()
}

// Binding returns what is currently bound to a control
func (e *Engine) Binding(c mapping.Control) (mapping.Binding, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.doc == nil {
		return mapping.Binding{}, false
	}
	b, ok := mapping.Resolve(c, &e.doc.Mappings)
	if ok {
		b.Entry = b.Entry.Clone()
	}
	return b, ok
}

// Lookup returns the entry stored at a slot
func (e *Engine) Lookup(coord mapping.Coordinates) (mapping.Entry, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.doc == nil {
		return mapping.Entry{}, false
	}
	entry, ok := e.doc.Mappings.Get(coord)
	return entry.Clone(), ok
}

// Phantom is a control holding bindings the editor cannot reach
type Phantom struct {
	Control  mapping.Control
	Shadowed []mapping.Binding
}

// PhantomBindings reports controls whose CC number is bound in both
// cc_absolute and cc_relative. Drag and drop only ever edits the absolute
// entry; the relative one keeps firing on the hardware.
func (e *Engine) PhantomBindings(controls []mapping.Control) []Phantom {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.doc == nil {
		return nil
	}
	var out []Phantom
	for _, c := range controls {
		if shadowed := mapping.Shadowed(c, &e.doc.Mappings); len(shadowed) > 0 {
			out = append(out, Phantom{Control: c, Shadowed: shadowed})
		}
	}
	return out
}

// ============ DRAG SESSION ============

// StartCatalogDrag begins dragging an action type from the palette
func (e *Engine) StartCatalogDrag(t actions.ActionType) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Handle(drag.StartCatalog{Action: t})
}

// StartControlDrag begins dragging the binding of c. It is refused for
// special controls and for controls with nothing bound.
func (e *Engine) StartControlDrag(c mapping.Control) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	bound := false
	if e.doc != nil {
		_, bound = mapping.Resolve(c, &e.doc.Mappings)
	}
	return e.session.Handle(drag.StartControl{Source: c, Bound: bound})
}

// HoverEnter marks c as the drop target under the pointer
func (e *Engine) HoverEnter(c mapping.Control) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Handle(drag.HoverEnter{Target: c})
}

// HoverMove keeps c marked as the drop target
func (e *Engine) HoverMove(c mapping.Control) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Handle(drag.HoverMove{Target: c})
}

// HoverLeave clears the drop target unless the pointer moved into a child
// of the same control
func (e *Engine) HoverLeave(c mapping.Control, related drag.Element) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Handle(drag.HoverLeave{Target: c, Related: related})
}

// EndDrag cancels the gesture
func (e *Engine) EndDrag() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session.Handle(drag.End{})
}

// Gesture returns the live drag gesture
func (e *Engine) Gesture() drag.Gesture {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Current()
}

// IsHoverTarget reports whether the control is under the pointer of a live drag
func (e *Engine) IsHoverTarget(controlID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.IsHoverTarget(controlID)
}

// IsDragSource reports whether the control is being dragged
func (e *Engine) IsDragSource(controlID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.IsDragSource(controlID)
}

// ============ COMMIT PROTOCOL ============

// pending is a reassignment applied locally and not yet persisted
type pending struct {
	tx      *mapping.Tx
	op      Op
	target  mapping.Control
	message string
}

// Drop completes the live gesture over target. The session is reset
// whatever happens. A nil error with OpNone means nothing was changed and
// nothing needed reporting.
func (e *Engine) Drop(ctx context.Context, target mapping.Control, mods Modifiers) (Outcome, error) {
	e.mu.Lock()
	g := e.session.Current()
	e.session.Handle(drag.Drop{})
	if !g.Dragging() {
		e.mu.Unlock()
		return Outcome{}, nil
	}

	var p *pending
	err := e.precheckLocked(target)
	if err == nil {
		switch g.Kind {
		case drag.KindCatalog:
			p, err = e.applyCatalogLocked(g.Action, target)
		case drag.KindControl:
			p, err = e.applyControlLocked(g.Source, target, mods)
		}
	}
	return e.finish(ctx, p, err)
}

// Unassign removes whatever is bound to c, with the same commit protocol
// as a drop
func (e *Engine) Unassign(ctx context.Context, c mapping.Control) (Outcome, error) {
	e.mu.Lock()
	var p *pending
	err := e.precheckLocked(c)
	if err == nil {
		if b, ok := mapping.Resolve(c, &e.doc.Mappings); ok {
			tx := mapping.Begin(&e.doc.Mappings)
			tx.Delete(b.Coordinates)
			p = &pending{
				tx:      tx,
				op:      OpUnassign,
				target:  c,
				message: fmt.Sprintf("Cleared %s from %s", b.Entry.Name, c.Name()),
			}
		}
	}
	return e.finish(ctx, p, err)
}

// errSkip aborts silently: nothing to report
var errSkip = errors.New("skip")

// precheckLocked enforces the preconditions shared by every reassignment
func (e *Engine) precheckLocked(target mapping.Control) error {
	if target.IsSpecial() || e.doc == nil {
		return errSkip
	}
	if e.doc.Dirty() {
		return ErrPendingChanges
	}
	return nil
}

// applyCatalogLocked writes a fresh entry for a palette action at target
func (e *Engine) applyCatalogLocked(t actions.ActionType, target mapping.Control) (*pending, error) {
	if !mapping.IsCompatible(t, target) {
		return nil, &ValidationError{Action: t, Control: target}
	}
	coord, ok := mapping.Target(target, &e.doc.Mappings)
	if !ok {
		return nil, errSkip
	}

	entry := mapping.NewEntry(t)
	tx := mapping.Begin(&e.doc.Mappings)
	tx.Set(coord, entry)
	return &pending{
		tx:      tx,
		op:      OpAssign,
		target:  target,
		message: fmt.Sprintf("Assigned %s to %s", entry.Name, target.Name()),
	}, nil
}

// applyControlLocked moves, copies or swaps the binding of source onto target
func (e *Engine) applyControlLocked(source, target mapping.Control, mods Modifiers) (*pending, error) {
	if source.ID == target.ID {
		return nil, errSkip
	}
	table := &e.doc.Mappings
	src, ok := mapping.Resolve(source, table)
	if !ok {
		return nil, errSkip
	}
	if !mapping.IsCompatible(src.Entry.Action, target) {
		return nil, &ValidationError{Action: src.Entry.Action, Control: target}
	}

	dst, targetBound := mapping.Resolve(target, table)
	op := OpMove
	switch {
	case mods&ModCopy != 0:
		op = OpCopy
	case targetBound:
		op = OpSwap
	}
	// Both directions must hold before anything is written
	if op == OpSwap && !mapping.IsCompatible(dst.Entry.Action, source) {
		return nil, &ValidationError{Action: dst.Entry.Action, Control: source, Swap: true}
	}

	dstCoord := dst.Coordinates
	if !targetBound {
		if dstCoord, ok = mapping.CoordinatesFor(target); !ok {
			return nil, errSkip
		}
	}
	// Two controls sharing one trigger: nothing would change
	if dstCoord == src.Coordinates {
		return nil, errSkip
	}

	tx := mapping.Begin(table)
	tx.Set(dstCoord, src.Entry)
	var message string
	switch op {
	case OpSwap:
		tx.Set(src.Coordinates, dst.Entry)
		message = fmt.Sprintf("Swapped %s and %s between %s and %s", src.Entry.Name, dst.Entry.Name, source.Name(), target.Name())
	case OpMove:
		tx.Delete(src.Coordinates)
		message = fmt.Sprintf("Moved %s from %s to %s", src.Entry.Name, source.Name(), target.Name())
	case OpCopy:
		message = fmt.Sprintf("Copied %s from %s to %s", src.Entry.Name, source.Name(), target.Name())
	}
	return &pending{tx: tx, op: op, target: target, message: message}, nil
}

// finish is entered with e.mu held and releases it. It reports validation
// and concurrency failures, or persists p and commits or rolls it back.
func (e *Engine) finish(ctx context.Context, p *pending, err error) (Outcome, error) {
	if err != nil {
		e.mu.Unlock()
		if errors.Is(err, errSkip) {
			return Outcome{}, nil
		}
		e.notify(capitalize(err.Error()), notify.Warning)
		return Outcome{}, err
	}
	if p == nil {
		e.mu.Unlock()
		return Outcome{}, nil
	}

	// The dirty flag stays set until the store answers; every other
	// reassignment is refused meanwhile
	e.doc.MarkDirty()
	snapshot := e.doc.Clone()
	snapshot.ClearDirty()
	e.mu.Unlock()

	// An accepted drop runs to completion; only the store may time it out
	saveErr := e.store.Save(context.WithoutCancel(ctx), snapshot)

	e.mu.Lock()
	touched := p.tx.Touched()
	if saveErr != nil {
		p.tx.Rollback()
		e.doc.ClearDirty()
		e.mu.Unlock()

		perr := &PersistenceError{Err: saveErr}
		log.Printf("Failed to save config, rolled back %d slot(s): %v", len(touched), saveErr)
		e.notify("Failed to save: "+perr.Detail(), notify.Error)
		return Outcome{}, perr
	}
	e.doc.ClearDirty()
	e.mu.Unlock()

	e.reselect(p.target)
	e.notify(p.message, notify.Success)
	return Outcome{Op: p.op, Touched: touched}, nil
}

// reselect selects target, cycling the selection first when it is already
// selected so views bound to it refresh
func (e *Engine) reselect(target mapping.Control) {
	if e.selection == nil {
		return
	}
	if e.selection.Current() == target.ID {
		e.selection.Clear()
	}
	e.selection.Select(target)
}

func (e *Engine) notify(message string, severity notify.Severity) {
	if e.notifier != nil {
		e.notifier.Notify(message, severity)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Package atspi adapts the AT-SPI2 accessibility bus to the element
// accessor interfaces consumed by the repositioning engine. All calls are
// synchronous round-trips to the owning process over the dedicated
// accessibility bus.
package atspi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/godbus/dbus/v5"

	"github.com/notishift/notishift/internal/element"
	"github.com/notishift/notishift/internal/geometry"
)

const (
	a11yBusName = "org.a11y.Bus"
	a11yBusPath = "/org/a11y/bus"

	registryName = "org.a11y.atspi.Registry"
	registryPath = "/org/a11y/atspi/registry"
	rootPath     = "/org/a11y/atspi/accessible/root"

	ifaceAccessible = "org.a11y.atspi.Accessible"
	ifaceComponent  = "org.a11y.atspi.Component"
	ifaceRegistry   = "org.a11y.atspi.Registry"
	ifaceEventWin   = "org.a11y.atspi.Event.Window"

	// coordTypeScreen selects absolute screen coordinates in Component calls.
	coordTypeScreen = uint32(0)
)

// ErrPermissionDenied indicates accessibility introspection is not
// permitted. It is fatal: the engine must not attempt any tree search, and
// startup must not proceed.
var ErrPermissionDenied = errors.New("accessibility introspection not permitted")

// ref is the opaque handle form used on the accessibility bus: a unique bus
// name plus an object path.
type ref struct {
	dest string
	path dbus.ObjectPath
}

// accessibleRef mirrors the AT-SPI (so) wire struct.
type accessibleRef struct {
	Name string
	Path dbus.ObjectPath
}

// Adapter implements element.Accessor and element.WindowSource over the
// AT-SPI2 accessibility bus.
type Adapter struct {
	session *dbus.Conn // session bus, for org.a11y.Bus
	conn    *dbus.Conn // dedicated accessibility bus
	logger  *slog.Logger
}

// Connect opens the session bus, resolves the accessibility bus address and
// connects to it.
func Connect(logger *slog.Logger) (*Adapter, error) {
	if logger == nil {
		logger = slog.Default()
	}

	session, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}

	var addr string
	err = session.Object(a11yBusName, a11yBusPath).
		Call("org.a11y.Bus.GetAddress", 0).Store(&addr)
	if err != nil {
		return nil, fmt.Errorf("%w: accessibility bus address unavailable: %v", ErrPermissionDenied, err)
	}

	conn, err := dbus.Connect(addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to accessibility bus: %w", err)
	}

	logger.Debug("connected to accessibility bus", "address", addr)
	return &Adapter{session: session, conn: conn, logger: logger}, nil
}

// Close shuts down the accessibility bus connection.
func (a *Adapter) Close() error {
	return a.conn.Close()
}

// Trusted reports whether assistive technology support is enabled on this
// desktop. Without it the element tree is empty and searches must not run.
func (a *Adapter) Trusted() (bool, error) {
	v, err := a.session.Object(a11yBusName, a11yBusPath).
		GetProperty("org.a11y.Status.IsEnabled")
	if err != nil {
		return false, fmt.Errorf("failed to read a11y status: %w", err)
	}
	enabled, ok := v.Value().(bool)
	if !ok {
		return false, fmt.Errorf("unexpected a11y status type %T", v.Value())
	}
	return enabled, nil
}

// RequestTrust asks the desktop to enable assistive technology support.
func (a *Adapter) RequestTrust() error {
	err := a.session.Object(a11yBusName, a11yBusPath).
		SetProperty("org.a11y.Status.IsEnabled", dbus.MakeVariant(true))
	if err != nil {
		return fmt.Errorf("%w: could not enable a11y support: %v", ErrPermissionDenied, err)
	}
	return nil
}

// Windows returns the top-level windows of the named application, in
// registry order.
func (a *Adapter) Windows(process string) ([]element.Handle, error) {
	apps, err := a.children(ref{dest: registryName, path: rootPath})
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate applications: %w", err)
	}

	for _, app := range apps {
		name, err := a.name(app)
		if err != nil || name != process {
			continue
		}
		wins, err := a.children(app)
		if err != nil {
			return nil, fmt.Errorf("failed to enumerate windows of %s: %w", process, err)
		}
		handles := make([]element.Handle, len(wins))
		for i, w := range wins {
			handles[i] = w
		}
		return handles, nil
	}
	return nil, element.ErrProcessNotFound
}

// Children implements element.Accessor.
func (a *Adapter) Children(h element.Handle) ([]element.Handle, error) {
	kids, err := a.children(h.(ref))
	if err != nil {
		return nil, err
	}
	handles := make([]element.Handle, len(kids))
	for i, k := range kids {
		handles[i] = k
	}
	return handles, nil
}

// Attribute implements element.Accessor. Unexposed attributes and read
// failures both report ok=false; tree searches treat them as non-matches.
func (a *Adapter) Attribute(h element.Handle, key string) (string, bool) {
	r := h.(ref)

	var attrs map[string]string
	err := a.object(r).Call(ifaceAccessible+".GetAttributes", 0).Store(&attrs)
	if err == nil {
		if v, ok := attrs[key]; ok {
			return v, true
		}
	}

	// The identifier is also exposed as a dedicated property on newer
	// toolkits.
	if key == element.AttrIdentifier {
		if v, err := a.object(r).GetProperty(ifaceAccessible + ".AccessibleId"); err == nil {
			if s, ok := v.Value().(string); ok && s != "" {
				return s, true
			}
		}
	}
	return "", false
}

// Size implements element.Accessor.
func (a *Adapter) Size(h element.Handle) (geometry.Size, error) {
	var w, ht int32
	err := a.object(h.(ref)).Call(ifaceComponent+".GetSize", 0).Store(&w, &ht)
	if err != nil {
		return geometry.Size{}, fmt.Errorf("size read failed: %w", err)
	}
	return geometry.Size{Width: int(w), Height: int(ht)}, nil
}

// Position implements element.Accessor.
func (a *Adapter) Position(h element.Handle) (geometry.Point, error) {
	var x, y int32
	err := a.object(h.(ref)).Call(ifaceComponent+".GetPosition", 0, coordTypeScreen).Store(&x, &y)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("position read failed: %w", err)
	}
	return geometry.Point{X: int(x), Y: int(y)}, nil
}

// SetPosition implements element.Accessor.
func (a *Adapter) SetPosition(h element.Handle, p geometry.Point) error {
	var ok bool
	err := a.object(h.(ref)).Call(ifaceComponent+".SetPosition", 0,
		int32(p.X), int32(p.Y), coordTypeScreen).Store(&ok)
	if err != nil {
		return fmt.Errorf("position write failed: %w", err)
	}
	if !ok {
		return fmt.Errorf("position write rejected by element owner")
	}
	return nil
}

// Subscribe registers for window-creation events of the named process and
// delivers the new window handles on events until ctx is done.
func (a *Adapter) Subscribe(ctx context.Context, process string, events chan<- element.Handle) error {
	err := a.conn.Object(registryName, registryPath).
		Call(ifaceRegistry+".RegisterEvent", 0, "window:create").Err
	if err != nil {
		return fmt.Errorf("failed to register for window events: %w", err)
	}

	err = a.conn.AddMatchSignal(
		dbus.WithMatchInterface(ifaceEventWin),
		dbus.WithMatchMember("Create"),
	)
	if err != nil {
		return fmt.Errorf("failed to add signal match: %w", err)
	}

	ch := make(chan *dbus.Signal, 32)
	a.conn.Signal(ch)

	go func() {
		defer a.conn.RemoveSignal(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case sig, ok := <-ch:
				if !ok {
					return
				}
				if sig.Name != ifaceEventWin+".Create" {
					continue
				}
				h := ref{dest: sig.Sender, path: sig.Path}
				if a.applicationName(h) != process {
					continue
				}
				select {
				case events <- h:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	a.logger.Info("subscribed to window creation events", "process", process)
	return nil
}

func (a *Adapter) object(r ref) dbus.BusObject {
	return a.conn.Object(r.dest, r.path)
}

func (a *Adapter) children(r ref) ([]ref, error) {
	var kids []accessibleRef
	err := a.object(r).Call(ifaceAccessible+".GetChildren", 0).Store(&kids)
	if err != nil {
		return nil, err
	}
	refs := make([]ref, len(kids))
	for i, k := range kids {
		refs[i] = ref{dest: k.Name, path: k.Path}
	}
	return refs, nil
}

func (a *Adapter) name(r ref) (string, error) {
	v, err := a.object(r).GetProperty(ifaceAccessible + ".Name")
	if err != nil {
		return "", err
	}
	s, _ := v.Value().(string)
	return s, nil
}

// applicationName resolves the owning application's name for any element,
// or "" when it cannot be determined.
func (a *Adapter) applicationName(r ref) string {
	var app accessibleRef
	err := a.object(r).Call(ifaceAccessible+".GetApplication", 0).Store(&app)
	if err != nil {
		return ""
	}
	name, err := a.name(ref{dest: app.Name, path: app.Path})
	if err != nil {
		return ""
	}
	return name
}

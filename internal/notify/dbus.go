//go:build linux

package notify

import "github.com/godbus/dbus/v5"

const (
	busName   = "org.freedesktop.Notifications"
	busPath   = "/org/freedesktop/Notifications"
	busMethod = busName + ".Notify"
	busClose  = busName + ".CloseNotification"
)

type dbusNotifier struct {
	obj dbus.BusObject
}

// New returns a D-Bus notifier, or a no-op one without a session bus.
func New() Notifier {
	conn, err := dbus.SessionBus()
	if err != nil {
		return noop{}
	}
	return &dbusNotifier{obj: conn.Object(busName, busPath)}
}

func (d *dbusNotifier) Notify(n Notification) (uint32, error) {
	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(n.Urgency)),
		"desktop-entry": dbus.MakeVariant(appName),
	}
	// app_name, replaces_id, app_icon, summary, body, actions, hints, expire_timeout
	call := d.obj.Call(busMethod, 0,
		appName, n.ReplacesID, n.Icon, n.Title, n.Body, []string{}, hints, n.Timeout)
	if call.Err != nil {
		return 0, call.Err
	}
	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (d *dbusNotifier) Close(id uint32) error {
	return d.obj.Call(busClose, 0, id).Err
}

package tray

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"github.com/j0KZ/K2-controller-design-sub000/internal/startup"
)

// Callbacks for tray menu actions
type Callbacks struct {
	OnOpen   func()
	OnReload func()
	OnQuit   func()
}

// Setup initializes the system tray using Fyne's built-in support.
// It reports whether the platform has a tray.
func Setup(app fyne.App, callbacks Callbacks) bool {
	desk, ok := app.(desktop.App)
	if !ok {
		return false
	}

	menu := fyne.NewMenu("K2 Controller",
		menuItem("Open K2 Controller", callbacks.OnOpen),
		menuItem("Reload Mappings", callbacks.OnReload),
		fyne.NewMenuItemSeparator(),
	)

	startupItem := fyne.NewMenuItem("Open at Startup", nil)
	startupItem.Checked = startup.IsEnabled()
	startupItem.Action = func() {
		var err error
		if startupItem.Checked {
			err = startup.Disable()
		} else {
			err = startup.Enable()
		}
		if err != nil {
			log.Printf("Failed to change startup registration: %v", err)
		}
		startupItem.Checked = startup.IsEnabled()
		menu.Refresh()
	}

	menu.Items = append(menu.Items,
		startupItem,
		fyne.NewMenuItemSeparator(),
		menuItem("Quit", callbacks.OnQuit),
	)

	desk.SetSystemTrayMenu(menu)
	desk.SetSystemTrayIcon(theme.MediaMusicIcon())
	return true
}

func menuItem(label string, fn func()) *fyne.MenuItem {
	return fyne.NewMenuItem(label, func() {
		if fn != nil {
			fn()
		}
	})
}

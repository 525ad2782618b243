package permissions

import "github.com/AntoineGS/tidyseal/internal/config"

func toggle(group, description, property, def, requires string) config.Permission {
	return config.Permission{
		Group:       group,
		Description: description,
		Property:    property,
		Kind:        config.KindToggle,
		Default:     config.Scalar(def),
		Requires:    requires,
	}
}

func text(group, description, property, requires string) config.Permission {
	return config.Permission{
		Group:       group,
		Description: description,
		Property:    property,
		Kind:        config.KindText,
		Requires:    requires,
	}
}

// Builtin returns the permission catalog used when the repository declares
// none. Entries are grouped contiguously.
func Builtin() []config.Permission {
	perms := []config.Permission{
		toggle("shared", "Network", "shared.network", "false", ""),
		toggle("shared", "Inter-process communications", "shared.ipc", "false", ""),

		toggle("sockets", "X11 windowing system", "sockets.x11", "false", ""),
		toggle("sockets", "Wayland windowing system", "sockets.wayland", "false", ""),
		toggle("sockets", "Fallback to X11 windowing system", "sockets.fallback-x11", "false", ""),
		toggle("sockets", "PulseAudio sound server", "sockets.pulseaudio", "false", ""),
		toggle("sockets", "D-Bus session bus", "sockets.session-bus", "false", ""),
		toggle("sockets", "D-Bus system bus", "sockets.system-bus", "false", ""),
		toggle("sockets", "Secure Shell agent", "sockets.ssh-auth", "false", "0.99.1"),
		toggle("sockets", "Smart cards", "sockets.pcsc", "false", "1.3.2"),
		toggle("sockets", "Printing system", "sockets.cups", "false", "1.5.2"),
		toggle("sockets", "GPG-Agent directories", "sockets.gpg-agent", "false", "1.14.0"),

		toggle("devices", "GPU acceleration", "devices.dri", "false", ""),
		toggle("devices", "Virtualization", "devices.kvm", "false", "0.6.12"),
		toggle("devices", "Shared memory", "devices.shm", "false", "1.6.1"),
		toggle("devices", "All devices (e.g. webcam)", "devices.all", "false", ""),

		toggle("features", "Development syscalls (e.g. ptrace)", "features.devel", "false", ""),
		toggle("features", "Programs from other architectures", "features.multiarch", "false", ""),
		toggle("features", "Bluetooth", "features.bluetooth", "false", "0.11.8"),
		toggle("features", "Controller Area Network bus", "features.canbus", "false", "1.0.3"),
		toggle("features", "Application shared memory", "features.per-app-dev-shm", "false", "1.12.0"),

		toggle("filesystems", "All system files", "filesystems.host-os", "false", "1.7.0"),
		toggle("filesystems", "All system libraries, executables and static data", "filesystems.host-etc", "false", "1.7.0"),
		toggle("filesystems", "All user files", "filesystems.home", "false", ""),
		toggle("filesystems", "All files", "filesystems.host", "false", ""),
		text("filesystems", "Other files", "filesystems.custom", ""),

		text("persistent", "Homedir-relative paths", "persistent.paths", ""),

		text("variables", "Environment variables", "variables.env", ""),

		text("session-bus", "Talks", "session-bus.talk", ""),
		text("session-bus", "Owns", "session-bus.own", ""),

		text("system-bus", "Talks", "system-bus.talk", ""),
		text("system-bus", "Owns", "system-bus.own", ""),
	}

	descriptions := map[string]string{
		"shared":      "List of subsystems shared with the host system",
		"sockets":     "List of well-known sockets available in the sandbox",
		"devices":     "List of devices available in the sandbox",
		"features":    "List of features available in the sandbox",
		"filesystems": "List of filesystem subsets available to the application",
		"persistent":  "List of homedir-relative paths created in the sandbox",
		"variables":   "List of variables exported to the application",
		"session-bus": "List of well-known names on the session bus",
		"system-bus":  "List of well-known names on the system bus",
	}

	for i := range perms {
		perms[i].GroupDescription = descriptions[perms[i].Group]
	}

	return perms
}

package mount

// Settings holds the policies shared by every directory mount of one filesystem.
// The owner may change them at any time; mounts read them on every call.
type Settings struct {
	// PermitLinks allows enumeration to report symbolic links.
	// It only filters listings. Exists, OpenRead and RealDir still follow a link,
	// even one pointing outside the mount, so it is not a sandbox.
	PermitLinks bool
}

// DefaultSettings returns the settings a filesystem starts with.
func DefaultSettings() *Settings {
	return &Settings{
		PermitLinks: false,
	}
}

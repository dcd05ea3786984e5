package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconGlobe    = "\uf0ac" // browser/web
	IconBack     = "\uf060" // arrow left
	IconCheck    = "\uf00c" // check
	IconX        = "\uf00d" // x
	IconWarning  = "\uf071" // warning
	IconInfo     = "\uf05a" // info
	IconConfig   = "\ue615" // config
	IconDatabase = "\uf1c0" // database
	IconSearch   = "\uf002" // search
	IconBook     = "\uf02d" // reader mode
	IconCursor   = "\uf054" // chevron-right
)

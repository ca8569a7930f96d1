// Package config provides the configuration for cefnav.
//
// Configuration is layered, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment (CEFNAV_*)  │  ← Highest priority
//	├─────────────────────────────┤
//	│  2. Config file (TOML)      │  ← ~/.config/cefnav/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Layers are deep merged by the loader package. Typed sections
// (Content, Layout, Log, Keymap) return snapshots of the merged values.
//
// # Example
//
//	cfg := config.New(config.WithPath("cefnav.toml"))
//	if err := cfg.Load(ctx); err != nil {
//	    return err
//	}
//	content := cfg.Content()
//	root, err := dom.Parse(r, dom.WithAtomicSelector(content.AtomicSelector))
//
// # Settings
//
//	platform                        auto | linux | macos | windows
//	content.atomicSelector          CSS selector of non-editable islands
//	content.inlineBoundarySelector  CSS selector of inline boundary elements
//	layout.width                    wrap width in cells
//	layout.measurer                 cell | font
//	log.level                       debug | info | warn | error
//	keymap.files                    JSON or YAML keymap files
package config

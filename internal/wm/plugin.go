// Copyright 2026 The Fire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wm

// OptionType tags the dynamic type carried by an Option's value: a
// flat record of (name, tagged value, default) is sufficient for the
// handful of scalar settings a plugin exposes.
type OptionType int

const (
	OptionBool OptionType = iota
	OptionInt
	OptionFloat
	OptionString
)

// Option is a plugin configuration option: a type tag, its current
// and default values, and an AlreadySet flag a plugin can raise to
// opt out of being overwritten when configuration is reloaded.
type Option struct {
	Type       OptionType
	Value      any
	Default    any
	AlreadySet bool
}

// Plugin is the interface every built-in (and any future) interactive
// plugin implements. Plugins receive an explicit *Core reference at
// Init time and store it themselves rather than reaching through a
// process-global singleton.
type Plugin interface {
	// Name identifies the plugin; for plugins that register an
	// Ownership ticket this must match the ticket's Name.
	Name() string

	// Init registers the plugin's bindings, hooks and (if it
	// participates in mutual exclusion) its Ownership ticket against
	// core.
	Init(core *Core)

	// Options returns the plugin's configuration options, keyed by
	// name, for the core to read external values into.
	Options() map[string]*Option

	// UpdateConfiguration is called after external configuration has
	// been (re)read into Options; plugins that cache derived state
	// from an option recompute it here.
	UpdateConfiguration()
}

// BasePlugin is embeddable scaffolding for the Options/UpdateConfiguration
// half of the Plugin contract, mirroring Plugin::options in plugin.hpp.
type BasePlugin struct {
	opts map[string]*Option
}

// Option registers (or returns the existing) option named key with
// the given type and default value.
func (b *BasePlugin) Option(key string, typ OptionType, def any) *Option {
	if b.opts == nil {
		b.opts = make(map[string]*Option)
	}
	o, ok := b.opts[key]
	if !ok {
		o = &Option{Type: typ, Default: def, Value: def}
		b.opts[key] = o
	}
	return o
}

// Options returns the plugin's option map.
func (b *BasePlugin) Options() map[string]*Option {
	if b.opts == nil {
		b.opts = make(map[string]*Option)
	}
	return b.opts
}

// UpdateConfiguration is a no-op default; plugins with derived state
// override it.
func (b *BasePlugin) UpdateConfiguration() {}

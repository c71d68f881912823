// Copyright (c) 2025 The matrixctl Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package board

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownBoard is returned for board names missing from a Registry.
var ErrUnknownBoard = errors.New("unknown board")

// Info identifies one controllable board.
type Info struct {
	// Name is the identifier used by Jump and on the command line.
	Name string
	// Path is where the board's BasicBoard service is mounted; defaults to Name.
	Path string
	// Asset is the logo shown for the board.
	Asset string
}

// Registry is a static table of known boards, validated when built.
type Registry struct {
	boards map[string]Info
}

// builtin lists the boards served by every matrix install.
var builtin = []Info{
	{Name: "clock", Asset: "clock.png"},
	{Name: "stocks", Asset: "stock.png"},
	{Name: "pga", Asset: "pga.png"},
	{Name: "sys", Asset: "server.png"},
}

// DefaultRegistry returns the built-in boards.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(builtin...)
	if err != nil {
		panic(err)
	}
	return r
}

// NewRegistry builds a registry, failing on empty names or assets and on duplicates.
func NewRegistry(infos ...Info) (*Registry, error) {
	r := &Registry{boards: make(map[string]Info, len(infos))}
	for _, info := range infos {
		if err := r.add(info, false); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// With returns a copy of r with infos added. Entries with an existing name
// replace the built-in entry; unset Path or Asset keep the previous value.
func (r *Registry) With(infos ...Info) (*Registry, error) {
	out := &Registry{boards: make(map[string]Info, len(r.boards)+len(infos))}
	for k, v := range r.boards {
		out.boards[k] = v
	}
	for _, info := range infos {
		if prev, ok := out.boards[strings.ToLower(info.Name)]; ok {
			if info.Path == "" {
				info.Path = prev.Path
			}
			if info.Asset == "" {
				info.Asset = prev.Asset
			}
		}
		if err := out.add(info, true); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *Registry) add(info Info, replace bool) error {
	info.Name = strings.ToLower(strings.TrimSpace(info.Name))
	if info.Name == "" {
		return errors.New("board: empty board name")
	}
	if info.Asset == "" {
		return fmt.Errorf("board %q: no asset", info.Name)
	}
	if _, dup := r.boards[info.Name]; dup && !replace {
		return fmt.Errorf("board %q: declared twice", info.Name)
	}
	if info.Path == "" {
		info.Path = info.Name
	}
	r.boards[info.Name] = info
	return nil
}

// Lookup returns the board registered under name.
func (r *Registry) Lookup(name string) (Info, error) {
	info, ok := r.boards[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Info{}, fmt.Errorf("%w %q", ErrUnknownBoard, name)
	}
	return info, nil
}

// Names returns the registered board names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.boards))
	for name := range r.boards {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Package scripting compiles Lua behaviour scripts and runs them inside
// per-owner virtual machines.
package scripting

import (
	"bytes"
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

var ErrNotLoaded = errors.New("script not loaded")

// Script is a compiled chunk. It is immutable and may be shared by any
// number of VMs.
type Script struct {
	name  string
	proto *lua.FunctionProto
}

// Compile parses and compiles Lua source.
func Compile(name string, source []byte) (*Script, error) {
	chunk, err := parse.Parse(bytes.NewReader(source), name)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	proto, err := lua.Compile(chunk, name)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}
	return &Script{name: name, proto: proto}, nil
}

func (s *Script) Name() string { return s.name }

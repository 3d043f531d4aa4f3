// Package luabind exposes package geoip to gopher-lua scripts as the
// "geoip" module:
//
//	local geoip = require("geoip")
//	local db = geoip.open_type("city", "country")
//	local r = db:lookup("example.com")
//	if r then
//		print(tostring(r), r.country_code)
//		for name, value in r do print(name, value) end
//	end
//
// Userdata wrappers keep the Go values alive; once the Lua state drops them
// the Go runtime releases the engine resources.
package luabind

import (
	"github.com/TomasB/geoip/internal/geoip"
	lua "github.com/yuin/gopher-lua"
)

const (
	handleTypeName = "GeoIP"
	resultTypeName = "GeoIPResult"
)

// Preload makes require("geoip") available in L. opts apply to every open.
func Preload(L *lua.LState, opts ...geoip.Option) {
	L.PreloadModule("geoip", Loader(opts...))
}

// Loader returns the module loader.
func Loader(opts ...geoip.Option) lua.LGFunction {
	return func(L *lua.LState) int {
		registerTypes(L)
		mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
			"open": func(L *lua.LState) int {
				return open(L, opts)
			},
			"open_type": func(L *lua.LState) int {
				return openType(L, opts)
			},
		})
		L.Push(mod)
		return 1
	}
}

func registerTypes(L *lua.LState) {
	mt := L.NewTypeMetatable(handleTypeName)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"lookup":   handleLookup,
		"describe": handleDescribe,
		"close":    handleClose,
	}))
	L.SetField(mt, "__tostring", L.NewFunction(handleDescribe))

	rmt := L.NewTypeMetatable(resultTypeName)
	L.SetField(rmt, "__index", L.NewFunction(resultIndex))
	L.SetField(rmt, "__tostring", L.NewFunction(resultToString))
	L.SetField(rmt, "__call", L.NewFunction(resultCall))
}

func open(L *lua.LState, opts []geoip.Option) int {
	path := L.CheckString(1)
	h, err := geoip.Open(path, opts...)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(newUserData(L, h, handleTypeName))
	return 1
}

func openType(L *lua.LState, opts []geoip.Option) int {
	types := make([]string, L.GetTop())
	for i := range types {
		types[i] = L.CheckString(i + 1)
	}
	h, err := geoip.OpenType(types, opts...)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(newUserData(L, h, handleTypeName))
	return 1
}

func newUserData(L *lua.LState, v any, typeName string) *lua.LUserData {
	ud := L.NewUserData()
	ud.Value = v
	L.SetMetatable(ud, L.GetTypeMetatable(typeName))
	return ud
}

func checkHandle(L *lua.LState) *geoip.Handle {
	ud := L.CheckUserData(1)
	if h, ok := ud.Value.(*geoip.Handle); ok {
		return h
	}
	L.ArgError(1, "GeoIP expected")
	return nil
}

func checkResult(L *lua.LState) *geoip.Result {
	ud := L.CheckUserData(1)
	if r, ok := ud.Value.(*geoip.Result); ok {
		return r
	}
	L.ArgError(1, "GeoIPResult expected")
	return nil
}

func handleLookup(L *lua.LState) int {
	h := checkHandle(L)
	name := L.CheckString(2)
	r, err := h.Lookup(name)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	if r == nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(newUserData(L, r, resultTypeName))
	return 1
}

func handleDescribe(L *lua.LState) int {
	h := checkHandle(L)
	L.Push(lua.LString(h.Describe()))
	return 1
}

func handleClose(L *lua.LState) int {
	checkHandle(L).Close()
	return 0
}

func toLValue(v any) lua.LValue {
	switch v := v.(type) {
	case string:
		return lua.LString(v)
	case float64:
		return lua.LNumber(v)
	default:
		return lua.LNil
	}
}

func resultIndex(L *lua.LState) int {
	r := checkResult(L)
	v, ok := r.Get(L.CheckString(2))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(toLValue(v))
	return 1
}

func resultToString(L *lua.LState) int {
	L.Push(lua.LString(checkResult(L).String()))
	return 1
}

// resultCall makes a result its own generic-for iterator: the control
// variable is the name of the field returned last.
func resultCall(L *lua.LState) int {
	r := checkResult(L)
	last := ""
	if s, ok := L.Get(3).(lua.LString); ok {
		last = string(s)
	}
	name, v, ok := r.Next(last)
	if !ok {
		return 0
	}
	L.Push(lua.LString(name))
	L.Push(toLValue(v))
	return 2
}

// Command geoiplookup prints the location of each host named on the command
// line, or runs a Lua script with the geoip module preloaded.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/TomasB/geoip/internal/geoip"
	"github.com/TomasB/geoip/internal/luabind"
	lua "github.com/yuin/gopher-lua"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "geoiplookup:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("geoiplookup", flag.ContinueOnError)
	path := fs.String("f", "", "database file to open")
	types := fs.String("t", "country", "comma separated editions to try when -f is not given (city, country, region)")
	script := fs.String("e", "", "Lua script to run instead of looking up hosts")
	verbose := fs.Bool("v", false, "print every field of each result")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *script != "" {
		L := lua.NewState()
		defer L.Close()
		luabind.Preload(L)
		L.SetGlobal("arg", argTable(L, fs.Args()))
		return L.DoFile(*script)
	}

	if fs.NArg() == 0 {
		return errors.New("usage: geoiplookup [-f file | -t types] [-v] host...")
	}

	var (
		h   *geoip.Handle
		err error
	)
	if *path != "" {
		h, err = geoip.Open(*path)
	} else {
		h, err = geoip.OpenType(strings.Split(*types, ","))
	}
	if err != nil {
		return err
	}
	defer h.Close()

	for _, name := range fs.Args() {
		if err := printLocation(out, h, name, *verbose); err != nil {
			return err
		}
	}
	return nil
}

func printLocation(out io.Writer, h *geoip.Handle, name string, verbose bool) error {
	r, err := h.Lookup(name)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if r == nil {
		fmt.Fprintf(out, "%s: %s: IP Address not found\n", h.Describe(), name)
		return nil
	}
	defer r.Close()

	fmt.Fprintf(out, "%s: %s\n", h.Describe(), r)
	if verbose {
		for field, v := range r.All() {
			fmt.Fprintf(out, "  %s: %v\n", field, v)
		}
	}
	return nil
}

func argTable(L *lua.LState, args []string) *lua.LTable {
	t := L.NewTable()
	for _, a := range args {
		t.Append(lua.LString(a))
	}
	return t
}

// Package hosts parses a hosts(5)-format file into a lookup table (§6
// "hosts file"). It is an external collaborator, out of the resolver
// engine's core: the engine never consults it, but the platform hosts-file
// path and this table shape are part of the fixed public surface.
package hosts

import (
	"bufio"
	"io"
	"net"
	"os"
	"runtime"
	"strings"
)

// Host is a single entry: an address, its canonical name, and any aliases.
type Host struct {
	Address net.IP
	Name    string
	Aliases []string
}

// Table is a parsed hosts file.
type Table struct {
	Hosts []Host
}

// DefaultPath returns the platform hosts-file path: /etc/hosts on Unix,
// %SystemRoot%\System32\drivers\etc\hosts on Windows.
func DefaultPath() string {
	if runtime.GOOS == "windows" {
		root := os.Getenv("SystemRoot")
		if root == "" {
			root = `C:\Windows`
		}
		return root + `\System32\drivers\etc\hosts`
	}
	return "/etc/hosts"
}

// Load reads and parses the hosts file at DefaultPath().
func Load() (Table, error) {
	f, err := os.Open(DefaultPath())
	if err != nil {
		return Table{}, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse parses hosts(5)-format data: whitespace-separated "<ip> <canonical>
// [<alias>...]" lines. "#" introduces a comment; blank lines are ignored.
func Parse(r io.Reader) (Table, error) {
	var tbl Table
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		ip := net.ParseIP(fields[0])
		if ip == nil {
			continue
		}
		if len(fields) < 2 {
			continue
		}
		tbl.Hosts = append(tbl.Hosts, Host{
			Address: ip,
			Name:    fields[1],
			Aliases: append([]string(nil), fields[2:]...),
		})
	}
	if err := scanner.Err(); err != nil {
		return Table{}, err
	}
	return tbl, nil
}

// FindAddress returns the address of the first host whose canonical name or
// alias matches name. The zero value and false are returned if none match.
func (t Table) FindAddress(name string) (net.IP, bool) {
	h, ok := t.findByName(name)
	if !ok {
		return nil, false
	}
	return h.Address, true
}

// FindName returns the canonical name of the first host whose address
// exactly matches addr.
func (t Table) FindName(addr net.IP) (string, bool) {
	h, ok := t.findByAddress(addr)
	if !ok {
		return "", false
	}
	return h.Name, true
}

// findByName returns the first host, in file order, whose canonical name
// matches name, or else whose aliases do: matching canonical first only
// within a single host's own entry, not across the whole table.
func (t Table) findByName(name string) (Host, bool) {
	for _, h := range t.Hosts {
		if h.Name == name {
			return h, true
		}
		for _, alias := range h.Aliases {
			if alias == name {
				return h, true
			}
		}
	}
	return Host{}, false
}

func (t Table) findByAddress(addr net.IP) (Host, bool) {
	for _, h := range t.Hosts {
		if h.Address.Equal(addr) {
			return h, true
		}
	}
	return Host{}, false
}

// Package hostlist persists the daemons a user connects to, keyed by stable
// ids so entries survive renames of host or port. Writes take a file lock so
// concurrent delugectl invocations cannot clobber each other.
package hostlist

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
)

// ErrNotFound reports a host id or name with no entry.
var ErrNotFound = errors.New("host not found")

// Host is one saved daemon endpoint.
type Host struct {
	ID       string `toml:"id"`
	Name     string `toml:"name"`
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
}

// Addr renders the endpoint as host:port.
func (h Host) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

type file struct {
	Hosts []Host `toml:"hosts"`
}

// List holds the saved hosts backed by one TOML file.
type List struct {
	path  string
	hosts []Host
}

// Load reads the hostlist at path; a missing file yields an empty list.
func Load(path string) (*List, error) {
	list := &List{path: path}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return list, nil
		}
		return nil, fmt.Errorf("read hostlist: %w", err)
	}
	var contents file
	if err := toml.Unmarshal(raw, &contents); err != nil {
		return nil, fmt.Errorf("parse hostlist: %w", err)
	}
	list.hosts = contents.Hosts
	return list, nil
}

// Hosts returns the entries sorted by name.
func (l *List) Hosts() []Host {
	out := make([]Host, len(l.hosts))
	copy(out, l.hosts)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Get finds a host by id or name.
func (l *List) Get(key string) (Host, error) {
	for _, h := range l.hosts {
		if h.ID == key || h.Name == key {
			return h, nil
		}
	}
	return Host{}, fmt.Errorf("%w: %q", ErrNotFound, key)
}

// Add appends a new entry and saves the file. The generated id is returned.
func (l *List) Add(host Host) (string, error) {
	host.Name = strings.TrimSpace(host.Name)
	host.Host = strings.TrimSpace(host.Host)
	if host.Host == "" {
		return "", errors.New("host is required")
	}
	if host.Port < 1 || host.Port > 65535 {
		return "", fmt.Errorf("port %d is out of range", host.Port)
	}
	if host.Name == "" {
		host.Name = host.Addr()
	}
	if _, err := l.Get(host.Name); err == nil {
		return "", fmt.Errorf("host %q already exists", host.Name)
	}
	host.ID = uuid.NewString()
	l.hosts = append(l.hosts, host)
	if err := l.save(); err != nil {
		return "", err
	}
	return host.ID, nil
}

// Remove deletes an entry by id or name and saves the file.
func (l *List) Remove(key string) error {
	for i, h := range l.hosts {
		if h.ID == key || h.Name == key {
			l.hosts = append(l.hosts[:i], l.hosts[i+1:]...)
			return l.save()
		}
	}
	return fmt.Errorf("%w: %q", ErrNotFound, key)
}

func (l *List) save() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("ensure hostlist directory: %w", err)
	}

	lock := flock.New(l.path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("lock hostlist: %w", err)
	}
	if !locked {
		return errors.New("hostlist is locked by another delugectl instance")
	}
	defer func() {
		_ = lock.Unlock()
	}()

	raw, err := toml.Marshal(file{Hosts: l.hosts})
	if err != nil {
		return fmt.Errorf("encode hostlist: %w", err)
	}
	tmp := fmt.Sprintf("%s.tmp-%d", l.path, time.Now().UnixNano())
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write hostlist: %w", err)
	}
	if err := os.Rename(tmp, l.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace hostlist: %w", err)
	}
	return nil
}

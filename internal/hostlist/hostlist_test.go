package hostlist_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/quepf/deluge-rpc/internal/hostlist"
)

func tempList(t *testing.T) (*hostlist.List, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hostlist.toml")
	list, err := hostlist.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return list, path
}

func TestAddGetRemove(t *testing.T) {
	list, path := tempList(t)

	id, err := list.Add(hostlist.Host{Name: "seedbox", Host: "10.0.0.5", Port: 58846, Username: "ops"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if id == "" {
		t.Fatal("empty id")
	}

	// Reload from disk and query by both keys.
	reloaded, err := hostlist.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	byName, err := reloaded.Get("seedbox")
	if err != nil {
		t.Fatalf("Get by name: %v", err)
	}
	byID, err := reloaded.Get(id)
	if err != nil {
		t.Fatalf("Get by id: %v", err)
	}
	if byName != byID {
		t.Fatalf("entries differ: %+v vs %+v", byName, byID)
	}
	if byName.Addr() != "10.0.0.5:58846" {
		t.Errorf("Addr() = %q", byName.Addr())
	}

	if err := reloaded.Remove(id); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := reloaded.Get("seedbox"); !errors.Is(err, hostlist.ErrNotFound) {
		t.Fatalf("Get after remove: %v", err)
	}
}

func TestAddValidates(t *testing.T) {
	list, _ := tempList(t)
	if _, err := list.Add(hostlist.Host{Host: "", Port: 58846}); err == nil {
		t.Error("expected error for empty host")
	}
	if _, err := list.Add(hostlist.Host{Host: "h", Port: 0}); err == nil {
		t.Error("expected error for bad port")
	}
	if _, err := list.Add(hostlist.Host{Name: "dup", Host: "h", Port: 1}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := list.Add(hostlist.Host{Name: "dup", Host: "h2", Port: 2}); err == nil {
		t.Error("expected error for duplicate name")
	}
}

func TestHostsSortedByName(t *testing.T) {
	list, _ := tempList(t)
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if _, err := list.Add(hostlist.Host{Name: name, Host: "h", Port: 58846}); err != nil {
			t.Fatalf("Add %s: %v", name, err)
		}
	}
	hosts := list.Hosts()
	want := []string{"alpha", "mid", "zeta"}
	for i, h := range hosts {
		if h.Name != want[i] {
			t.Fatalf("hosts[%d] = %q, want %q", i, h.Name, want[i])
		}
	}
}

func TestRemoveMissing(t *testing.T) {
	list, _ := tempList(t)
	if err := list.Remove("ghost"); !errors.Is(err, hostlist.ErrNotFound) {
		t.Fatalf("Remove: %v", err)
	}
}

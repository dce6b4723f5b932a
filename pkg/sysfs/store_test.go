package sysfs

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/bridgewise-net/bridgewise/pkg/bridge"
	"github.com/bridgewise-net/bridgewise/pkg/util"
)

const ageingTemplate = "/sys/class/net/{ifname}/bridge/ageing_time"

// fakeBridge lays out the sysfs directories for a bridge under root.
func fakeBridge(t *testing.T, root, name string, ports ...string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(root, "sys", "class", "net", name, "bridge"), 0755); err != nil {
		t.Fatal(err)
	}
	for _, p := range ports {
		if err := os.MkdirAll(filepath.Join(root, "sys", "class", "net", name, "brif", p), 0755); err != nil {
			t.Fatal(err)
		}
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	root := t.TempDir()
	fakeBridge(t, root, "br0")
	store := NewWithRoot(root)
	vars := bridge.Vars{Ifname: "br0"}

	if err := store.Write(ageingTemplate, vars, "30000"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := store.Read(ageingTemplate, vars)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got != "30000" {
		t.Errorf("read back %q, want 30000", got)
	}
}

func TestReadTrimsKernelNewline(t *testing.T) {
	root := t.TempDir()
	fakeBridge(t, root, "br0")
	path := filepath.Join(root, "sys", "class", "net", "br0", "bridge", "ageing_time")
	if err := os.WriteFile(path, []byte("30000\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := NewWithRoot(root).Read(ageingTemplate, bridge.Vars{Ifname: "br0"})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got != "30000" {
		t.Errorf("read %q, want trimmed 30000", got)
	}
}

func TestWriteToMissingDeviceFails(t *testing.T) {
	store := NewWithRoot(t.TempDir())
	err := store.Write(ageingTemplate, bridge.Vars{Ifname: "br9"}, "30000")
	if !errors.Is(err, util.ErrWriteFailed) {
		t.Errorf("want ErrWriteFailed, got %v", err)
	}
	var werr *util.WriteError
	if !errors.As(err, &werr) {
		t.Fatalf("want *util.WriteError, got %T", err)
	}
	if werr.Location == "" {
		t.Error("write error should carry the resolved location")
	}
}

func TestReadMissingProperty(t *testing.T) {
	root := t.TempDir()
	fakeBridge(t, root, "br0")
	_, err := NewWithRoot(root).Read(ageingTemplate, bridge.Vars{Ifname: "br0"})
	if !errors.Is(err, util.ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestPorts(t *testing.T) {
	root := t.TempDir()
	fakeBridge(t, root, "br0", "eth0", "eth1")
	ports, err := NewWithRoot(root).Ports("br0")
	if err != nil {
		t.Fatalf("Ports: %v", err)
	}
	if want := []string{"eth0", "eth1"}; !reflect.DeepEqual(ports, want) {
		t.Errorf("ports = %v, want %v", ports, want)
	}
}

func TestPortsOfMissingBridge(t *testing.T) {
	_, err := NewWithRoot(t.TempDir()).Ports("br9")
	if !errors.Is(err, util.ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

package httpc

import (
	"testing"
	"time"
)

func TestSharedClientDefaults(t *testing.T) {
	if Client == nil {
		t.Fatal("shared client must be initialized")
	}
	if Client.Timeout != DefaultTimeout {
		t.Errorf("expected timeout %v, got %v", DefaultTimeout, Client.Timeout)
	}
}

func TestNewClientTimeout(t *testing.T) {
	c := NewClient(5 * time.Second)
	if c.Timeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", c.Timeout)
	}
	if c.Transport == nil {
		t.Error("expected configured transport")
	}
}

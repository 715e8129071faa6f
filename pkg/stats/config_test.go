package stats

import (
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{name: "default", modify: func(*Config) {}},
		{name: "pure go driver", modify: func(c *Config) { c.Driver = DriverPureGo }},
		{name: "no busy timeout", modify: func(c *Config) { c.BusyTimeout = 0 }},
		{name: "empty dir", modify: func(c *Config) { c.Dir = "" }, wantErr: true},
		{name: "unknown driver", modify: func(c *Config) { c.Driver = "postgres" }, wantErr: true},
		{name: "negative busy timeout", modify: func(c *Config) { c.BusyTimeout = -time.Second }, wantErr: true},
		{name: "zero query timeout", modify: func(c *Config) { c.QueryTimeout = 0 }, wantErr: true},
		{name: "zero top n", modify: func(c *Config) { c.TopN = 0 }, wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := NewConfig()
			test.modify(&c)

			err := c.Validate()
			if test.wantErr && err == nil {
				t.Fatal("expected an error, got nil")
			}
			if !test.wantErr && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// serverArgs is a typical plantkeeper-server command line mixing flags read
// by different config layers.
var serverArgs = []string{
	"-a", ":8080",
	"-e", "http://minio:9000",
	"-env", "/etc/plantkeeper/.env",
	"--config=/etc/plantkeeper/server.json",
	"-d", "postgres://db/plants",
}

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "server flags keep their values",
			args:    serverArgs,
			allowed: []string{"-a", "-d"},
			want:    []string{"-a", ":8080", "-d", "postgres://db/plants"},
		},
		{
			name:    "short flag is not a prefix match for a longer one",
			args:    serverArgs,
			allowed: []string{"-e"},
			want:    []string{"-e", "http://minio:9000"},
		},
		{
			name:    "equals form",
			args:    serverArgs,
			allowed: []string{"--config"},
			want:    []string{"--config=/etc/plantkeeper/server.json"},
		},
		{
			name:    "dash-prefixed token is not taken as a value",
			args:    []string{"-env", "-d", "dsn"},
			allowed: []string{"-env"},
			want:    []string{"-env"},
		},
		{
			name:    "nothing allowed",
			args:    serverArgs,
			allowed: nil,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	assert.Equal(t, "/etc/plantkeeper/server.json", ConfigFileFlag(serverArgs))
	assert.Equal(t, "b.json", ConfigFileFlag([]string{"-c", "a.json", "-config", "b.json"}), "last wins")
	assert.Empty(t, ConfigFileFlag([]string{"-env", "x.env"}))
}

func TestEnvFileFlag(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "among server flags", args: serverArgs, want: "/etc/plantkeeper/.env"},
		{name: "double dash with equals", args: []string{"--env=local.env"}, want: "local.env"},
		{name: "single dash with equals", args: []string{"-env=local.env"}, want: "local.env"},
		{name: "last occurrence wins", args: []string{"-env", "a.env", "-env", "b.env"}, want: "b.env"},
		{name: "S3 endpoint flag is not the env file", args: []string{"-e", "http://minio:9000"}, want: ""},
		{name: "no short form", args: []string{"-v", "x.env"}, want: ""},
		{name: "missing value", args: []string{"-env"}, want: ""},
		{name: "absent", args: []string{"-c", "cfg.json"}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EnvFileFlag(tt.args))
		})
	}
}

package pkg

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIPIsLocal(t *testing.T) {
	cases := []struct {
		addr            string
		expectedIsLocal bool
	}{
		{addr: "127.0.0.1:8080", expectedIsLocal: true},
		{addr: "172.17.0.1:53436", expectedIsLocal: true},
		{addr: "172.200.0.1:60096", expectedIsLocal: true},
		{addr: "172.17.5.1:53436", expectedIsLocal: false},
		{addr: "83.12.53.65:2145", expectedIsLocal: false},
		{addr: "192.168.0.15:8080", expectedIsLocal: false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expectedIsLocal, IPIsLocal(tc.addr), tc.addr)
	}
}

func TestReadUserIP(t *testing.T) {
	req, err := http.NewRequest("GET", "/workouts", nil)
	require.NoError(t, err)

	req.RemoteAddr = "127.0.0.1:8080"
	ip, err := ReadUserIP(req)
	require.NoError(t, err)
	assert.Equal(t, "localhost", ip)

	req.RemoteAddr = "83.12.53.65:2145"
	ip, err = ReadUserIP(req)
	require.NoError(t, err)
	assert.Equal(t, "83.12.53.65", ip)

	req.Header.Set("X-Real-Ip", "111.12.56.65")
	ip, err = ReadUserIP(req)
	require.NoError(t, err)
	assert.Equal(t, "111.12.56.65", ip)

	req.Header.Set("X-Real-Ip", "not-an-ip")
	_, err = ReadUserIP(req)
	require.Error(t, err)
}

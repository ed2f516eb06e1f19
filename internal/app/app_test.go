package app

import (
	"context"
	"testing"

	"lazyintern/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListenAddr(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"8080", ":8080", false},
		{":9000", ":9000", false},
		{" 3000 ", ":3000", false},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ListenAddr(tt.in)
		if tt.wantErr {
			assert.Error(t, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestConnectDB_UnknownDriver(t *testing.T) {
	db, err := ConnectDB(context.Background(), config.DatabaseConfig{Driver: "mysql"})
	require.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "mysql")
}

package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEndpoint_DSN(t *testing.T) {
	tests := []struct {
		name     string
		endpoint endpoint
		want     string
	}{
		{
			name: "full",
			endpoint: endpoint{
				host: "db", port: "5432", username: "villa", password: "s3cr/t",
				name: "staging_villa", sslMode: "require", timezone: "Asia/Makassar",
			},
			want: "postgres://villa:s3cr%2Ft@db:5432/staging_villa?sslmode=require&timezone=Asia%2FMakassar",
		},
		{
			name:     "no options",
			endpoint: endpoint{host: "localhost", port: "5432", username: "u", password: "p", name: "villa"},
			want:     "postgres://u:p@localhost:5432/villa",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.endpoint.dsn())
		})
	}
}

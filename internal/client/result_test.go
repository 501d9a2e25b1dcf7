package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeResult(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		success bool
		message string
	}{
		{"success true", 200, `{"success":true}`, true, ""},
		{"success false on 200", 200, `{"success":false,"message":"Client introuvable"}`, false, "Client introuvable"},
		{"message only", 200, `{"message":"Produit ajouté"}`, true, "Produit ajouté"},
		{"error only", 200, `{"error":"Données manquantes"}`, false, "Données manquantes"},
		{"error wins over message", 200, `{"message":"ok","error":"ko"}`, false, "ko"},
		{"success beats error member", 200, `{"success":true,"error":""}`, true, ""},
		{"bare array", 200, `[{"codeClient":"C1"}]`, true, ""},
		{"empty body 204", 204, ``, true, ""},
		{"status fallback", 500, `{}`, false, ""},
		{"success true on 500", 500, `{"success":true}`, false, ""},
		{"html error page", 502, `<html>bad gateway</html>`, false, "<html>bad gateway</html>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := decodeResult(tt.status, []byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.success, res.Success)
			assert.Equal(t, tt.message, res.Message)
		})
	}
}

func TestDecodeResult_GarbageOn200(t *testing.T) {
	_, err := decodeResult(200, []byte("Warning: mysqli_connect()"))
	assert.ErrorIs(t, err, errUnexpectedBody)
}

func TestDecodeData_NullLeavesTarget(t *testing.T) {
	res, err := decodeResult(200, []byte(`{"success":true,"data":null}`))
	require.NoError(t, err)
	items := []int{}
	require.NoError(t, res.decodeData(&items))
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

package shardmux_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/shardmux/go-shardmux"
)

func TestCatalogMode_String(t *testing.T) {
	unknownMode := int(ReplicaSetBased) + 1
	tests := []struct {
		mode     CatalogMode
		expected string
	}{
		{LegacySet, "legacy-set"},
		{ReplicaSetBased, "replica-set-based"},
		{CatalogMode(unknownMode), fmt.Sprintf("unknown mode (code %d)", unknownMode)},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.mode.String())
		})
	}
}

func TestConnKind_String(t *testing.T) {
	unknownKind := int(KindOther) + 1
	tests := []struct {
		kind     ConnKind
		expected string
	}{
		{KindSingleNode, "single-node"},
		{KindNodeSet, "node-set"},
		{KindOther, "other"},
		{ConnKind(unknownKind), fmt.Sprintf("unknown kind (code %d)", unknownKind)},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.kind.String())
		})
	}
}

package cartline

import (
	"context"
	"testing"
)

func TestRemoveIgnoresMalformedLineID(t *testing.T) {
	repo := NewPostgres(nil)
	if err := repo.Remove(context.Background(), "7b7e9d0e-64d3-4f4a-9257-1c6e8f0b2a11", "garbage"); err != nil {
		t.Fatalf("remove with malformed id: %v", err)
	}
}

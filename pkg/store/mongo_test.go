package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

func TestMongoDocConversion(t *testing.T) {
	d, _ := NewDocument("m", sampleCanvas())
	back := fromMongo(toMongo(d))
	if back.ID != d.ID || back.Name != d.Name || string(back.Snapshot) != string(d.Snapshot) {
		t.Errorf("round trip = %+v, want %+v", back, d)
	}
	if !back.UpdatedAt.Equal(d.UpdatedAt) {
		t.Error("timestamps lost")
	}
}

func TestMongoStoreLive(t *testing.T) {
	uri := os.Getenv("RBCHECK_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("RBCHECK_TEST_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, err := NewMongoStore(ctx, uri, "rbcheck_test")
	if err != nil {
		t.Fatalf("NewMongoStore: %v", err)
	}
	defer s.Close()

	d, _ := NewDocument("live", sampleCanvas())
	if err := s.Put(ctx, d); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := s.Get(ctx, d.ID)
	if err != nil || got.Name != "live" {
		t.Fatalf("Get() = %+v, %v", got, err)
	}
	if err := s.Delete(ctx, d.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, d.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete: err = %v", err)
	}
}

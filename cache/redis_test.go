package cache

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
)

func TestRedisBackend_Load_Hit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	b := NewRedisBackendFromClient(db, "test:cache")

	mock.ExpectGet("test:cache").SetVal(`{"key1": "value1"}`)

	table, err := b.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if table["key1"] != "value1" {
		t.Errorf("expected value1, got %v", table["key1"])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRedisBackend_Load_Missing(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	b := NewRedisBackendFromClient(db, "test:cache")

	mock.ExpectGet("test:cache").RedisNil()

	table, err := b.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(table) != 0 {
		t.Errorf("missing snapshot should yield empty table, got %v", table)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRedisBackend_Load_Corrupt(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	b := NewRedisBackendFromClient(db, "test:cache")

	mock.ExpectGet("test:cache").SetVal("{not json")

	_, err := b.Load()
	if err == nil {
		t.Fatal("expected corrupt error")
	}
	var corrupt *CorruptError
	if !errors.As(err, &corrupt) {
		t.Errorf("expected *CorruptError, got %T", err)
	}
}

func TestRedisBackend_Save(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	b := NewRedisBackendFromClient(db, "test:cache")

	table := map[string]any{"key1": "value1"}
	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		t.Fatal(err)
	}
	mock.ExpectSet("test:cache", data, 0).SetVal("OK")

	if err := b.Save(table); err != nil {
		t.Errorf("Save failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRedisBackend_Clear(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	b := NewRedisBackendFromClient(db, "test:cache")

	mock.ExpectDel("test:cache").SetVal(1)

	if err := b.Clear(); err != nil {
		t.Errorf("Clear failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRedisBackend_DefaultKey(t *testing.T) {
	db, _ := redismock.NewClientMock()
	defer db.Close()

	b := NewRedisBackendFromClient(db, "")
	if b.Location() != "gotms:cache" {
		t.Errorf("default key = %q, want gotms:cache", b.Location())
	}
}

func TestStore_WithRedisBackend(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	mock.ExpectGet("gotms:cache").SetVal(`{"projects?code=web": ["a"]}`)

	s, err := Open("", WithBackend(NewRedisBackendFromClient(db, "")))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if _, ok := s.PersistentGet("projects?code=web"); !ok {
		t.Error("value loaded from redis snapshot should be present")
	}
}

package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestInsert(t *testing.T) {
	var gotKey string
	var gotFields map[string]string
	repo := New(&mockStore{
		hsetFn: func(_ context.Context, key string, fields map[string]string) error {
			gotKey, gotFields = key, fields
			return nil
		},
	})

	b := testBuilding("id-1", "国立代々木競技場")
	if err := repo.Insert(context.Background(), "user-1", b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotKey != "archmap:favorites:user-1" {
		t.Errorf("key = %q", gotKey)
	}
	raw, ok := gotFields["国立代々木競技場"]
	if !ok {
		t.Fatalf("field not keyed by building name: %v", gotFields)
	}
	var rec record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("stored value not valid JSON: %v", err)
	}
	if rec.UserID != "user-1" || rec.Name != "国立代々木競技場" || rec.Latitude != 35.667 {
		t.Errorf("unexpected record %+v", rec)
	}
}

func TestInsert_StoreError(t *testing.T) {
	boom := errors.New("connection refused")
	repo := New(&mockStore{
		hsetFn: func(context.Context, string, map[string]string) error { return boom },
	})
	err := repo.Insert(context.Background(), "user-1", testBuilding("id-1", "A"))
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	var gotKey string
	var gotFields []string
	repo := New(&mockStore{
		hdelFn: func(_ context.Context, key string, fields ...string) error {
			gotKey, gotFields = key, fields
			return nil
		},
	})

	if err := repo.Delete(context.Background(), "user-1", "東京都庁舎"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "archmap:favorites:user-1" || len(gotFields) != 1 || gotFields[0] != "東京都庁舎" {
		t.Errorf("hdel %q %v", gotKey, gotFields)
	}
}

func TestListByUser_SortedSkipsBadRecords(t *testing.T) {
	recB, _ := json.Marshal(toRecord("user-1", testBuilding("2", "B館")))
	recA, _ := json.Marshal(toRecord("user-1", testBuilding("1", "A館")))
	repo := New(&mockStore{
		hgetAllFn: func(context.Context, string) (map[string]string, error) {
			return map[string]string{
				"B館":   string(recB),
				"A館":   string(recA),
				"壊れた記録": "{not json",
			}, nil
		},
	})

	got, err := repo.ListByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (undecodable record skipped)", len(got))
	}
	if got[0].Name() != "A館" || got[1].Name() != "B館" {
		t.Errorf("not sorted by name: %v, %v", got[0].Name(), got[1].Name())
	}
}

func TestListByUser_StoreError(t *testing.T) {
	boom := errors.New("timeout")
	repo := New(&mockStore{
		hgetAllFn: func(context.Context, string) (map[string]string, error) { return nil, boom },
	})
	if _, err := repo.ListByUser(context.Background(), "user-1"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

package usecase

import (
	"encoding/json"
	"testing"

	"github.com/kola-ootro/oura-ring-data-collector/internal/domain/models"
)

func rec(day string) models.Record {
	return models.Record{"day": day}
}

func TestMergeIntoEmptyStore(t *testing.T) {
	store := models.Store{}
	incoming := map[string]*models.Bucket{
		"daily_activity": {Data: []models.Record{rec("a"), rec("b")}},
	}

	got := Merge(store, incoming)
	if got["daily_activity"].Len() != 2 {
		t.Fatalf("unexpected merge result %v", got)
	}
}

func TestMergeAppendsPreservingOrder(t *testing.T) {
	store := models.Store{
		"daily_activity": {Data: []models.Record{rec("a"), rec("b")}},
	}
	incoming := map[string]*models.Bucket{
		"daily_activity": {Data: []models.Record{rec("c")}},
	}

	got := Merge(store, incoming)
	data := got["daily_activity"].Data
	if len(data) != 3 {
		t.Fatalf("expected 3 records, got %d", len(data))
	}
	for i, want := range []string{"a", "b", "c"} {
		if data[i]["day"] != want {
			t.Fatalf("order broken at %d: %v", i, data)
		}
	}
}

func TestMergeDoesNotDeduplicate(t *testing.T) {
	store := models.Store{
		"daily_sleep": {Data: []models.Record{rec("a")}},
	}
	incoming := map[string]*models.Bucket{
		"daily_sleep": {Data: []models.Record{rec("a")}},
	}

	got := Merge(store, incoming)
	if got["daily_sleep"].Len() != 2 {
		t.Fatalf("expected duplicates kept, got %v", got["daily_sleep"].Data)
	}
}

func TestMergeNewTypeInsertedVerbatim(t *testing.T) {
	store := models.Store{
		"daily_activity": {Data: []models.Record{rec("a")}},
	}
	incoming := map[string]*models.Bucket{
		"daily_readiness": {
			Data:  []models.Record{rec("r")},
			Extra: map[string]json.RawMessage{"next_token": json.RawMessage(`"tok"`)},
		},
	}

	got := Merge(store, incoming)
	if got["daily_activity"].Len() != 1 {
		t.Fatalf("existing type touched: %v", got)
	}
	b := got["daily_readiness"]
	if b == nil || b.Len() != 1 {
		t.Fatalf("new type not inserted: %v", got)
	}
	if string(b.Extra["next_token"]) != `"tok"` {
		t.Fatalf("metadata not carried over: %v", b.Extra)
	}
}

func TestMergeKeepsExistingMetadata(t *testing.T) {
	store := models.Store{
		"daily_sleep": {
			Data:  []models.Record{rec("a")},
			Extra: map[string]json.RawMessage{"next_token": json.RawMessage(`"old"`)},
		},
	}
	incoming := map[string]*models.Bucket{
		"daily_sleep": {
			Data:  []models.Record{rec("b")},
			Extra: map[string]json.RawMessage{"next_token": json.RawMessage(`"new"`)},
		},
	}

	got := Merge(store, incoming)
	if string(got["daily_sleep"].Extra["next_token"]) != `"old"` {
		t.Fatalf("metadata overwritten: %v", got["daily_sleep"].Extra)
	}
}

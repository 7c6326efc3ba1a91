package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestFoodListingDecodesLeniently(t *testing.T) {
	raw := `[
		{"_id":"a","foodName":"Rice","quantity":"3 kg","expiryTime":"2030-01-02T10:30","createdAt":"2029-12-31T08:00:00.000Z"},
		{"_id":"b","foodName":"Bread","quantity":12,"expiryTime":"next tuesday","createdAt":1700000000000},
		{"_id":"c","foodName":"Soup","quantity":null,"expiryTime":null}
	]`
	var items []FoodListing
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		t.Fatalf("Unmarshal: unexpected error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("Unmarshal: want 3 listings got %d", len(items))
	}

	want := time.Date(2030, 1, 2, 10, 30, 0, 0, time.Local)
	if !items[0].ExpiryTime.Equal(want) || items[0].Quantity != "3 kg" {
		t.Fatalf("Unmarshal: first listing decoded as %+v", items[0])
	}
	if items[1].Quantity != "12" {
		t.Fatalf("Unmarshal: numeric quantity want 12 got %q", items[1].Quantity)
	}
	if !items[1].ExpiryTime.IsZero() {
		t.Fatalf("Unmarshal: unrecognized expiry must decode to zero, got %s", items[1].ExpiryTime)
	}
	if items[1].CreatedAt.UnixMilli() != 1700000000000 {
		t.Fatalf("Unmarshal: unix millis want 1700000000000 got %d", items[1].CreatedAt.UnixMilli())
	}
	if items[2].Quantity != "" || !items[2].ExpiryTime.IsZero() {
		t.Fatalf("Unmarshal: nulls must decode to zero values, got %+v", items[2])
	}
}

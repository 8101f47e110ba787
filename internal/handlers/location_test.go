package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/immunitrack/vaccine-tracker-api/internal/models"
)

func TestLocationCRUD(t *testing.T) {
	db := setupTestDB(t)
	handler := NewLocationHandler(db)
	ctx := context.Background()

	create := CreateLocationInput{}
	create.Body.LocationName = "City Health Center"
	create.Body.Address = AddressInput{Street: "123 Health St", City: "New York", State: "NY", ZipCode: "10002"}
	create.Body.Capacity = 50
	create.Body.ContactNumber = "+1234567800"
	create.Body.OperatingHours = OperatingHoursInput{Open: "08:00", Close: "17:00"}

	resp, err := handler.HandleCreate(ctx, &create)
	if err != nil {
		t.Fatalf("HandleCreate returned error: %v", err)
	}
	location := resp.Body.Data
	if location.OperatingHours.Open != "08:00" {
		t.Errorf("unexpected opening time: %q", location.OperatingHours.Open)
	}

	t.Run("duplicate name", func(t *testing.T) {
		_, err := handler.HandleCreate(ctx, &create)
		assertStatus(t, err, http.StatusBadRequest)
		if err.Error() != "Location with this name already exists" {
			t.Errorf("unexpected message: %q", err.Error())
		}
	})

	t.Run("partial update", func(t *testing.T) {
		update := UpdateLocationInput{ID: fmt.Sprint(location.ID)}
		update.Body.Capacity = intPtr(75)
		update.Body.OperatingHours = &OperatingHoursInput{Open: "07:30", Close: "18:00"}

		resp, err := handler.HandleUpdate(ctx, &update)
		if err != nil {
			t.Fatalf("HandleUpdate returned error: %v", err)
		}
		if resp.Body.Data.Capacity != 75 {
			t.Errorf("expected capacity 75, got %d", resp.Body.Data.Capacity)
		}
		if resp.Body.Data.LocationName != "City Health Center" {
			t.Errorf("name should not change, got %q", resp.Body.Data.LocationName)
		}
		if resp.Body.Data.OperatingHours.Close != "18:00" {
			t.Errorf("expected closing time 18:00, got %q", resp.Body.Data.OperatingHours.Close)
		}
	})

	t.Run("soft delete", func(t *testing.T) {
		resp, err := handler.HandleDelete(ctx, &DeleteLocationInput{ID: fmt.Sprint(location.ID)})
		if err != nil {
			t.Fatalf("HandleDelete returned error: %v", err)
		}
		if resp.Body.Message != "Location deleted successfully" {
			t.Errorf("unexpected message: %q", resp.Body.Message)
		}

		var count int64
		db.Model(&models.Location{}).Count(&count)
		if count != 1 {
			t.Fatalf("soft delete must keep the row, got %d rows", count)
		}

		list, err := handler.HandleList(ctx, &ListLocationsInput{})
		if err != nil {
			t.Fatalf("HandleList returned error: %v", err)
		}
		if len(list.Body.Data) != 0 {
			t.Errorf("inactive location must not be listed, got %d items", len(list.Body.Data))
		}
	})
}

func TestLocationListSearchAndOrder(t *testing.T) {
	db := setupTestDB(t)
	handler := NewLocationHandler(db)
	ctx := context.Background()

	createTestLocation(t, db, "Public Health Clinic")
	createTestLocation(t, db, "Community Hospital")

	resp, err := handler.HandleList(ctx, &ListLocationsInput{})
	if err != nil {
		t.Fatalf("HandleList returned error: %v", err)
	}
	if len(resp.Body.Data) != 2 {
		t.Fatalf("expected 2 locations, got %d", len(resp.Body.Data))
	}
	// Name ascending.
	if resp.Body.Data[0].LocationName != "Community Hospital" {
		t.Errorf("unexpected order, first is %q", resp.Body.Data[0].LocationName)
	}

	input := ListLocationsInput{}
	input.Search = "CLINIC"
	resp, err = handler.HandleList(ctx, &input)
	if err != nil {
		t.Fatalf("HandleList returned error: %v", err)
	}
	if len(resp.Body.Data) != 1 || resp.Body.Data[0].LocationName != "Public Health Clinic" {
		t.Errorf("expected the clinic only, got %+v", resp.Body.Data)
	}
}

func TestLocationNotFound(t *testing.T) {
	db := setupTestDB(t)
	handler := NewLocationHandler(db)
	ctx := context.Background()

	_, err := handler.HandleGet(ctx, &GetLocationInput{ID: "7"})
	assertStatus(t, err, http.StatusNotFound)
	if err.Error() != "Location not found" {
		t.Errorf("unexpected message: %q", err.Error())
	}

	_, err = handler.HandleGet(ctx, &GetLocationInput{ID: "abc"})
	assertStatus(t, err, http.StatusNotFound)
}

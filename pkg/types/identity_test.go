package types

import (
	"encoding/json"
	"testing"

	"github.com/matryer/is"
)

func TestCanonicalIDOfStringMatchesDocument(t *testing.T) {
	is := is.New(t)

	const id = "507f1f77bcf86cd799439011"

	is.Equal(CanonicalID(id), CanonicalID(map[string]any{"_id": id}))
	is.Equal(CanonicalID(id), CanonicalID(map[string]any{"id": id}))
	is.Equal(CanonicalID(id), CanonicalID(Alert{ObjectID: id}))
	is.Equal(CanonicalID(id), CanonicalID(&Alert{ID: id}))
	is.Equal(CanonicalID(id), CanonicalID(map[string]string{"_id": id}))
}

func TestCanonicalIDPrefersObjectID(t *testing.T) {
	is := is.New(t)

	is.Equal(CanonicalID(map[string]any{"_id": "a", "id": "b"}), "a")
	is.Equal(CanonicalID(map[string]any{"_id": "", "id": "b"}), "b")
	is.Equal(CanonicalID(Alert{ObjectID: "a", ID: "b"}), "a")
	is.Equal(CanonicalID(map[string]any{"_id": map[string]any{"id": "nested"}}), "nested")
}

func TestCanonicalIDOfNumbers(t *testing.T) {
	is := is.New(t)

	is.Equal(CanonicalID(42), "42")
	is.Equal(CanonicalID(int64(42)), "42")
	is.Equal(CanonicalID(float64(42)), "42")
	is.Equal(CanonicalID(json.Number("17")), "17")
}

func TestCanonicalIDOfUnknownValues(t *testing.T) {
	is := is.New(t)

	is.Equal(CanonicalID(nil), "")
	is.Equal(CanonicalID((*Alert)(nil)), "")
	is.Equal(CanonicalID(true), "")
	is.Equal(CanonicalID(map[string]any{}), "")
}

func TestEntityRefAcceptsBothShapes(t *testing.T) {
	is := is.New(t)

	var flat, embedded Alert
	is.NoErr(json.Unmarshal([]byte(`{"id":"a","entityId":"stu-42"}`), &flat))
	is.NoErr(json.Unmarshal([]byte(`{"id":"a","entityId":{"_id":"stu-42","name":"Ada"}}`), &embedded))

	is.Equal(flat.EntityID, EntityRef("stu-42"))
	is.Equal(flat.EntityID, embedded.EntityID)
}

func TestAlertDefaults(t *testing.T) {
	is := is.New(t)

	var a Alert
	is.NoErr(json.Unmarshal([]byte(`{"_id":"x","priority":"HIGH","type":"ADMIN_ACCESS"}`), &a))

	is.Equal(a.Identity(), "x")
	is.Equal(a.CurrentStatus(), StatusActive)
	is.Equal(a.Type.Label(), "Students Not in College")
	is.Equal(AlertType("SOMETHING_NEW").Label(), "SOMETHING_NEW")
}

func TestParseHelpers(t *testing.T) {
	is := is.New(t)

	p, ok := ParsePriority("high")
	is.True(ok)
	is.Equal(p, PriorityHigh)

	_, ok = ParsePriority("urgent")
	is.True(!ok)

	a, ok := ParseAction("Dismiss")
	is.True(ok)
	is.Equal(a, ActionDismiss)

	_, ok = ParseAction("escalate")
	is.True(!ok)
}

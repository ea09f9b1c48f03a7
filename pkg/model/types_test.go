package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestContactList_PrependKeepsReceiver(t *testing.T) {
	ada := Contact{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", PhoneNumber: "123"}
	grace := Contact{FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", PhoneNumber: "456"}

	first := ContactList(nil).Prepend(ada)
	second := first.Prepend(grace)

	if first.Len() != 1 {
		t.Fatalf("expected original list untouched, got %d entries", first.Len())
	}
	want := ContactList{grace, ada}
	if diff := cmp.Diff(want, second); diff != "" {
		t.Fatalf("prepend mismatch (-want +got):\n%s", diff)
	}
}

func TestContactFromDraft(t *testing.T) {
	got := ContactFromDraft(map[string]string{
		FieldFirstName:   "Ada",
		FieldLastName:    "Lovelace",
		FieldEmail:       "ada@example.com",
		FieldPhoneNumber: "123",
		"ignored":        "x",
	})
	want := Contact{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", PhoneNumber: "123"}
	if got != want {
		t.Fatalf("contact mismatch: want %+v, got %+v", want, got)
	}
	for _, name := range ContactFields() {
		if got.Value(name) == "" {
			t.Fatalf("expected value for %s", name)
		}
	}
	if got.Value("unknown") != "" {
		t.Fatalf("expected empty value for unknown field")
	}
	if got.DisplayName() != "Ada Lovelace" {
		t.Fatalf("display name = %q", got.DisplayName())
	}
}

package query

import (
	"reflect"
	"testing"
)

func docs(field string, values ...any) []Document {
	out := make([]Document, len(values))
	for i, v := range values {
		out[i] = Document{Data: map[string]any{field: v}}
	}
	return out
}

func TestProject_Full(t *testing.T) {
	in := docs("technology", "react", "vue")
	out := Project(in, FullDocuments())

	if len(out) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(out))
	}
	if !reflect.DeepEqual(out[0], in[0]) {
		t.Errorf("expected document to pass through, got %#v", out[0])
	}
}

func TestProject_FieldOnlyDedupeKeepsFirstSeenOrder(t *testing.T) {
	out := Project(docs("technology", "b", "a", "b", "c"), FieldValues("technology", true))

	if want := []any{"b", "a", "c"}; !reflect.DeepEqual(out, want) {
		t.Errorf("got %v, want %v", out, want)
	}
}

func TestProject_FieldOnlyWithoutDedupe(t *testing.T) {
	out := Project(docs("technology", "b", "a", "b"), FieldValues("technology", false))

	if want := []any{"b", "a", "b"}; !reflect.DeepEqual(out, want) {
		t.Errorf("got %v, want %v", out, want)
	}
}

func TestProject_FieldOnlySkipsMissingField(t *testing.T) {
	in := append(docs("technology", "react"), Document{Data: map[string]any{"category": "CMS"}})
	out := Project(in, FieldValues("technology", true))

	if want := []any{"react"}; !reflect.DeepEqual(out, want) {
		t.Errorf("got %v, want %v", out, want)
	}
}

func TestProject_DedupeCompositeValues(t *testing.T) {
	in := docs("category_obj",
		[]any{"CMS", "Blogs"},
		[]any{"CMS", "Blogs"},
		[]any{"Analytics"},
	)
	out := Project(in, FieldValues("category_obj", true))

	if len(out) != 2 {
		t.Errorf("expected 2 distinct values, got %v", out)
	}
}

func TestProject_Pick(t *testing.T) {
	in := []Document{{Data: map[string]any{
		"technology":     "WordPress",
		"icon":           "WordPress.svg",
		"mobile_origins": 123,
	}}}

	out := Project(in, PickFields("technology", "icon", "description"))

	want := []any{map[string]any{"technology": "WordPress", "icon": "WordPress.svg"}}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("got %v, want %v", out, want)
	}
}

func TestProject_EmptyInput(t *testing.T) {
	out := Project(nil, FieldValues("technology", true))
	if out == nil || len(out) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", out)
	}
}
